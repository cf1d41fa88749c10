package repository

import (
	"context"
	"testing"
	"time"

	"huonganh/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisRepo(t *testing.T) (*miniredis.Miniredis, *RedisContextRepository) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	return s, NewRedisContextRepository(client)
}

func TestRedisContextRepository(t *testing.T) {
	s, repo := setupRedisRepo(t)
	ctx := context.Background()

	t.Run("SetAndGetContext", func(t *testing.T) {
		convCtx := &models.ConversationContext{
			ChatID:     123,
			BookingID:  7,
			SelectedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.SetContext(ctx, convCtx))

		got, err := repo.GetContext(ctx, 123)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(123), got.ChatID)
		assert.Equal(t, int64(7), got.BookingID)
	})

	t.Run("LatestSelectionWins", func(t *testing.T) {
		require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 123, BookingID: 7}))
		require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 123, BookingID: 9}))

		got, err := repo.GetContext(ctx, 123)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(9), got.BookingID)
	})

	t.Run("ContextHasNoExpiry", func(t *testing.T) {
		require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 321, BookingID: 1}))
		assert.Equal(t, time.Duration(0), s.TTL("booking_context:321"))
	})

	t.Run("GetMissingContext", func(t *testing.T) {
		got, err := repo.GetContext(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearContext", func(t *testing.T) {
		require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 456, BookingID: 2}))
		require.NoError(t, repo.ClearContext(ctx, 456))

		got, err := repo.GetContext(ctx, 456)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRedisCheckRateLimit(t *testing.T) {
	s, repo := setupRedisRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 111, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, 111, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Window expiry resets the counter.
	s.FastForward(2 * time.Minute)
	allowed, err = repo.CheckRateLimit(ctx, 111, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRepositoryNilClient(t *testing.T) {
	repo := NewRedisContextRepository(nil)
	ctx := context.Background()

	_, err := repo.GetContext(ctx, 1)
	assert.Error(t, err)
	assert.Error(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 1}))
	assert.Error(t, repo.ClearContext(ctx, 1))
	_, err = repo.CheckRateLimit(ctx, 1, 1, time.Minute)
	assert.Error(t, err)
}
