package repository

import (
	"context"
	"sync"
	"time"

	"huonganh/internal/models"
)

// MemoryContextRepository is the in-process fallback used when Redis is
// unavailable and in tests.
type MemoryContextRepository struct {
	contexts   sync.Map
	rateLimits sync.Map
}

func NewMemoryContextRepository() *MemoryContextRepository {
	return &MemoryContextRepository{}
}

func (r *MemoryContextRepository) GetContext(ctx context.Context, chatID int64) (*models.ConversationContext, error) {
	val, ok := r.contexts.Load(chatID)
	if !ok {
		return nil, nil
	}
	return val.(*models.ConversationContext), nil
}

func (r *MemoryContextRepository) SetContext(ctx context.Context, convCtx *models.ConversationContext) error {
	r.contexts.Store(convCtx.ChatID, convCtx)
	return nil
}

func (r *MemoryContextRepository) ClearContext(ctx context.Context, chatID int64) error {
	r.contexts.Delete(chatID)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryContextRepository) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(chatID)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{count: 1, expiresAt: now.Add(window)}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(chatID, entry)
	return entry.count <= limit, nil
}
