package repository

import (
	"context"
	"testing"
	"time"

	"huonganh/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContextRepository(t *testing.T) {
	repo := NewMemoryContextRepository()
	ctx := context.Background()

	got, err := repo.GetContext(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 1, BookingID: 3}))
	require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 1, BookingID: 4}))

	got, err = repo.GetContext(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.BookingID)

	require.NoError(t, repo.ClearContext(ctx, 1))
	got, err = repo.GetContext(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCheckRateLimit(t *testing.T) {
	repo := NewMemoryContextRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 10, 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, 10, 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Separate chats do not share a counter.
	allowed, err = repo.CheckRateLimit(ctx, 11, 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}
