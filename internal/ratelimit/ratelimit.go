package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result contains the result of a rate limit check
type Result struct {
	Allowed   bool          // Whether the action is allowed
	Remaining int           // Remaining actions in the window
	ResetIn   time.Duration // Time until the window resets
	Limit     int           // The limit for this action
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// LocalLimiter keeps one token bucket per key in process memory.
// Used when no Redis is configured; limits are per instance.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	maxKeys  int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(requestsPerSecond, burst int) *LocalLimiter {
	if burst < 1 {
		burst = 1
	}
	return &LocalLimiter{
		limiters: make(map[string]*entry),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		maxKeys:  10000,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (*Result, error) {
	now := time.Now()

	l.mu.Lock()
	e, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= l.maxKeys {
			l.evictLocked(now)
		}
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	allowed := e.limiter.AllowN(now, 1)
	remaining := int(math.Floor(e.limiter.TokensAt(now)))
	if remaining < 0 {
		remaining = 0
	}

	var resetIn time.Duration
	if !allowed && l.rate > 0 {
		resetIn = time.Duration(float64(time.Second) / float64(l.rate))
	}

	return &Result{
		Allowed:   allowed,
		Remaining: remaining,
		ResetIn:   resetIn,
		Limit:     l.burst,
	}, nil
}

// evictLocked drops buckets idle for over a minute, or everything if none are.
func (l *LocalLimiter) evictLocked(now time.Time) {
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) > time.Minute {
			delete(l.limiters, k)
		}
	}
	if len(l.limiters) >= l.maxKeys {
		l.limiters = make(map[string]*entry)
	}
}
