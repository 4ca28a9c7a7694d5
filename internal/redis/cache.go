package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nutrition-admin/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - admin:stats - dashboard aggregates
// - admin:user:{chat_id} - user detail card

const (
	statsKey      = "admin:stats"
	userKeyPrefix = "admin:user:"
)

// CacheStore keeps short-lived copies of read results. The source tables are
// written by n8n, so entries are never invalidated explicitly and rely on TTL.
type CacheStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, ttl time.Duration) *CacheStore {
	return &CacheStore{
		client: client,
		ttl:    ttl,
	}
}

// GetStats returns nil, nil on a cache miss.
func (c *CacheStore) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	ok, err := c.get(ctx, statsKey, &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

func (c *CacheStore) SetStats(ctx context.Context, stats domain.Stats) error {
	return c.set(ctx, statsKey, stats)
}

// GetUser returns nil, nil on a cache miss.
func (c *CacheStore) GetUser(ctx context.Context, chatID string) (*domain.NutritionUserDetail, error) {
	var u domain.NutritionUserDetail
	ok, err := c.get(ctx, userKeyPrefix+chatID, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (c *CacheStore) SetUser(ctx context.Context, chatID string, u domain.NutritionUserDetail) error {
	return c.set(ctx, userKeyPrefix+chatID, u)
}

func (c *CacheStore) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return false, nil // Cache miss
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *CacheStore) set(ctx context.Context, key string, value interface{}) error {
	if c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Ping checks if Redis is available
func (c *CacheStore) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
