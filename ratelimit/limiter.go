// Package ratelimit implements a sliding-window request limiter for the
// guidelines generation endpoint. The Redis backing is best-effort: when it
// is unreachable the limiter fails open rather than blocking generations.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Result is the outcome of one limit check
type Result struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// Limiter answers whether a keyed request may proceed right now
type Limiter interface {
	Check(ctx context.Context, key string) Result
}

// RedisLimiter keeps one sorted set per key, scored by request timestamp.
// Entries older than the window are purged on every check; a denied check
// records nothing.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter creates a limiter allowing limit requests per window
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, now: time.Now}
}

// Check reports whether the request is allowed and records it if so
func (l *RedisLimiter) Check(ctx context.Context, key string) Result {
	now := l.now()
	windowStart := now.Add(-l.window)
	redisKey := "ratelimit:" + key

	pipe := l.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.L().Warn("rate limiter unavailable, failing open", zap.Error(err))
		return Result{Allowed: true, Remaining: l.limit, ResetAt: now}
	}

	count := int(countCmd.Val())
	resetAt := resetTime(oldestCmd.Val(), now, l.window)

	if count >= l.limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	record := l.rdb.Pipeline()
	record.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	record.Expire(ctx, redisKey, l.window)
	if _, err := record.Exec(ctx); err != nil {
		zap.L().Warn("rate limiter record failed", zap.Error(err))
	}

	if count == 0 {
		resetAt = now.Add(l.window)
	}
	return Result{Allowed: true, Remaining: l.limit - count - 1, ResetAt: resetAt}
}

func resetTime(oldest []redis.Z, now time.Time, window time.Duration) time.Time {
	if len(oldest) == 0 {
		return now.Add(window)
	}
	return time.Unix(0, int64(oldest[0].Score)).Add(window)
}

// MemoryLimiter is the single-process fallback used when Redis is not
// configured. Not suitable for multi-instance deployments: each process
// counts independently.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter creates an in-process limiter
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Check reports whether the request is allowed and records it if so
func (l *MemoryLimiter) Check(ctx context.Context, key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	kept := l.entries[key][:0]
	for _, ts := range l.entries[key] {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}
	l.entries[key] = kept

	resetAt := now.Add(l.window)
	if len(kept) > 0 {
		resetAt = kept[0].Add(l.window)
	}

	if len(kept) >= l.limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	l.entries[key] = append(kept, now)
	return Result{Allowed: true, Remaining: l.limit - len(kept) - 1, ResetAt: resetAt}
}
