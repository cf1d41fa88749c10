package repository

import (
	"context"
	"sync/atomic"
	"time"

	"huonganh/internal/domain"
	"huonganh/internal/models"

	"github.com/rs/zerolog"
)

// FailoverContextRepository serves from the primary (Redis) until a call
// fails, then falls back to the in-memory repository and periodically probes
// the primary for recovery.
type FailoverContextRepository struct {
	primary   domain.ContextRepository
	fallback  domain.ContextRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed probe
}

const recoveryProbeInterval = time.Minute

func NewFailoverContextRepository(primary, fallback domain.ContextRepository, logger *zerolog.Logger) *FailoverContextRepository {
	return &FailoverContextRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverContextRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary context repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverContextRepository) shouldProbe() bool {
	return time.Since(time.Unix(0, r.lastCheck.Load())) > recoveryProbeInterval
}

func (r *FailoverContextRepository) GetContext(ctx context.Context, chatID int64) (*models.ConversationContext, error) {
	if !r.isDown.Load() {
		convCtx, err := r.primary.GetContext(ctx, chatID)
		if err == nil {
			return convCtx, nil
		}
		r.markDown(err)
	} else if r.shouldProbe() {
		convCtx, err := r.primary.GetContext(ctx, chatID)
		if err == nil {
			r.isDown.Store(false)
			return convCtx, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.GetContext(ctx, chatID)
}

func (r *FailoverContextRepository) SetContext(ctx context.Context, convCtx *models.ConversationContext) error {
	if !r.isDown.Load() {
		err := r.primary.SetContext(ctx, convCtx)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SetContext(ctx, convCtx)
}

func (r *FailoverContextRepository) ClearContext(ctx context.Context, chatID int64) error {
	if !r.isDown.Load() {
		err := r.primary.ClearContext(ctx, chatID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.ClearContext(ctx, chatID)
}

func (r *FailoverContextRepository) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, chatID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckRateLimit(ctx, chatID, limit, window)
}
