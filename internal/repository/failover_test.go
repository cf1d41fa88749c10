package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"huonganh/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRepository fails every call while broken is true.
type flakyRepository struct {
	inner  *MemoryContextRepository
	broken bool
}

var errRepoDown = errors.New("repository down")

func (f *flakyRepository) GetContext(ctx context.Context, chatID int64) (*models.ConversationContext, error) {
	if f.broken {
		return nil, errRepoDown
	}
	return f.inner.GetContext(ctx, chatID)
}

func (f *flakyRepository) SetContext(ctx context.Context, convCtx *models.ConversationContext) error {
	if f.broken {
		return errRepoDown
	}
	return f.inner.SetContext(ctx, convCtx)
}

func (f *flakyRepository) ClearContext(ctx context.Context, chatID int64) error {
	if f.broken {
		return errRepoDown
	}
	return f.inner.ClearContext(ctx, chatID)
}

func (f *flakyRepository) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	if f.broken {
		return false, errRepoDown
	}
	return f.inner.CheckRateLimit(ctx, chatID, limit, window)
}

func newFailoverUnderTest() (*flakyRepository, *MemoryContextRepository, *FailoverContextRepository) {
	primary := &flakyRepository{inner: NewMemoryContextRepository()}
	fallback := NewMemoryContextRepository()
	logger := zerolog.Nop()
	return primary, fallback, NewFailoverContextRepository(primary, fallback, &logger)
}

func TestFailoverUsesPrimaryWhenHealthy(t *testing.T) {
	primary, _, repo := newFailoverUnderTest()
	ctx := context.Background()

	require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 1, BookingID: 5}))

	got, err := primary.inner.GetContext(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.BookingID)
}

func TestFailoverFallsBackOnError(t *testing.T) {
	primary, fallback, repo := newFailoverUnderTest()
	ctx := context.Background()

	primary.broken = true

	require.NoError(t, repo.SetContext(ctx, &models.ConversationContext{ChatID: 2, BookingID: 8}))

	got, err := fallback.GetContext(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(8), got.BookingID)

	// Subsequent reads keep serving from the fallback without touching the
	// primary again.
	got, err = repo.GetContext(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(8), got.BookingID)
}

func TestFailoverRecoversAfterProbeInterval(t *testing.T) {
	primary, _, repo := newFailoverUnderTest()
	ctx := context.Background()

	primary.broken = true
	_, err := repo.GetContext(ctx, 3)
	require.NoError(t, err)
	assert.True(t, repo.isDown.Load())

	// Primary heals and the probe window elapses.
	primary.broken = false
	require.NoError(t, primary.inner.SetContext(ctx, &models.ConversationContext{ChatID: 3, BookingID: 11}))
	repo.lastCheck.Store(time.Now().Add(-2 * recoveryProbeInterval).UnixNano())

	got, err := repo.GetContext(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(11), got.BookingID)
	assert.False(t, repo.isDown.Load())
}

func TestFailoverRateLimit(t *testing.T) {
	primary, _, repo := newFailoverUnderTest()
	ctx := context.Background()

	primary.broken = true

	for i := 0; i < 2; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 4, 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := repo.CheckRateLimit(ctx, 4, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}
