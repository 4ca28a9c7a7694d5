package redis

import (
	"context"
	"fmt"
	"time"

	"nutrition-admin/internal/ratelimit"

	goredis "github.com/redis/go-redis/v9"
)

// Rate limiting key pattern:
// - ratelimit:{caller}:api - fixed window counter per Telegram user or IP

// RateLimitConfig contains configuration for rate limiting
type RateLimitConfig struct {
	Limit  int           // Max requests per window
	Window time.Duration // Window length
}

// RateLimiter handles rate limiting using Redis, shared by every instance.
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
	script *goredis.Script
}

// incr-and-expire in one round trip so a crash between the two cannot leave a key without TTL.
var fixedWindowScript = goredis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('EXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('TTL', KEYS[1])
	if ttl < 0 then
		redis.call('EXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return {current, ttl}
`)

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		script: fixedWindowScript,
	}
}

// Allow checks if the caller identified by key can make another API request
func (r *RateLimiter) Allow(ctx context.Context, key string) (*ratelimit.Result, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:api", key)
	window := int(r.config.Window.Seconds())
	if window < 1 {
		window = 1
	}

	result, err := r.script.Run(ctx, r.client, []string{redisKey}, window).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	// Parse the result
	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) < 2 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}
	current, ok1 := resultSlice[0].(int64)
	ttl, ok2 := resultSlice[1].(int64)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	remaining := r.config.Limit - int(current)
	if remaining < 0 {
		remaining = 0
	}

	return &ratelimit.Result{
		Allowed:   int(current) <= r.config.Limit,
		Remaining: remaining,
		ResetIn:   time.Duration(ttl) * time.Second,
		Limit:     r.config.Limit,
	}, nil
}
