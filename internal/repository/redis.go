package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"huonganh/internal/config"
	"huonganh/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisContextRepository stores the per-chat selected booking in Redis.
// Contexts are written without TTL: a selection lives until the next one
// overwrites it.
type RedisContextRepository struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisContextRepository(client *redis.Client) *RedisContextRepository {
	return &RedisContextRepository{client: client}
}

func contextKey(chatID int64) string {
	return fmt.Sprintf("booking_context:%d", chatID)
}

func (r *RedisContextRepository) GetContext(ctx context.Context, chatID int64) (*models.ConversationContext, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, contextKey(chatID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get context from redis: %w", err)
	}

	var convCtx models.ConversationContext
	if err := json.Unmarshal([]byte(val), &convCtx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal context: %w", err)
	}

	return &convCtx, nil
}

func (r *RedisContextRepository) SetContext(ctx context.Context, convCtx *models.ConversationContext) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(convCtx)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	if err := r.client.Set(ctx, contextKey(convCtx.ChatID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set context in redis: %w", err)
	}

	return nil
}

func (r *RedisContextRepository) ClearContext(ctx context.Context, chatID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, contextKey(chatID)).Err(); err != nil {
		return fmt.Errorf("failed to delete context from redis: %w", err)
	}
	return nil
}

// CheckRateLimit counts messages per chat in a fixed window backed by an
// expiring counter key.
func (r *RedisContextRepository) CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	key := fmt.Sprintf("rate_limit:%d", chatID)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	return count <= int64(limit), nil
}
