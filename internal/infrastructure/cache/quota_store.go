// Package cache provides Redis-backed and in-memory counters shared across
// application instances.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/invoicehub/backend/internal/application/assist"
	"github.com/invoicehub/backend/internal/infrastructure/config"
)

const quotaKeyPrefix = "assist:quota:"

// Counters outlive their month by a grace period, then expire on their own.
const quotaKeyTTL = 62 * 24 * time.Hour

// RedisQuotaStore tracks per-tenant monthly assist usage in Redis, suitable
// for deployments with multiple application instances.
type RedisQuotaStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisQuotaStore creates a quota store from Redis configuration
func NewRedisQuotaStore(cfg *config.RedisConfig) (*RedisQuotaStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQuotaStore{
		client:    client,
		keyPrefix: quotaKeyPrefix,
	}, nil
}

// NewRedisQuotaStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisQuotaStoreWithClient(client *redis.Client, keyPrefix string) *RedisQuotaStore {
	if keyPrefix == "" {
		keyPrefix = quotaKeyPrefix
	}
	return &RedisQuotaStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Consume increments the tenant's counter for the month and reports whether
// the call stayed within the limit. Denied calls are rolled back so they do
// not count against the quota.
func (s *RedisQuotaStore) Consume(ctx context.Context, tenantID uuid.UUID, month string, limit int) (bool, error) {
	key := s.key(tenantID, month)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume quota: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, quotaKeyTTL).Err(); err != nil {
			return false, fmt.Errorf("failed to set quota expiry: %w", err)
		}
	}

	if count > int64(limit) {
		if err := s.client.Decr(ctx, key).Err(); err != nil {
			return false, fmt.Errorf("failed to roll back quota counter: %w", err)
		}
		return false, nil
	}
	return true, nil
}

// Usage returns the tenant's consumed count for the month
func (s *RedisQuotaStore) Usage(ctx context.Context, tenantID uuid.UUID, month string) (int, error) {
	count, err := s.client.Get(ctx, s.key(tenantID, month)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read quota usage: %w", err)
	}
	return count, nil
}

// Close closes the Redis client
func (s *RedisQuotaStore) Close() error {
	return s.client.Close()
}

func (s *RedisQuotaStore) key(tenantID uuid.UUID, month string) string {
	return fmt.Sprintf("%s%s:%s", s.keyPrefix, tenantID, month)
}

var _ assist.QuotaStore = (*RedisQuotaStore)(nil)
