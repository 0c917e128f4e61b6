// Package cache stores generated guidelines keyed by a content hash of the
// calibration answers and model, so identical requests within the TTL reuse
// the earlier generation instead of calling the model again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Mattiasalardi/VDP/models"
)

const keyPrefix = "guidelines:"

// Stats summarizes cache occupancy
type Stats struct {
	TotalEntries   int `json:"total_entries"`
	ValidEntries   int `json:"valid_entries"`
	ExpiredEntries int `json:"expired_entries"`
}

// Cache is a best-effort guidelines store. Lookups on an unreachable backend
// report a miss instead of an error.
type Cache interface {
	Get(ctx context.Context, key string) (*models.GeneratedGuidelines, bool)
	Set(ctx context.Context, key string, guidelines *models.GeneratedGuidelines)
	Clear(ctx context.Context)
	Stats(ctx context.Context) Stats
}

// Key derives the content-addressed cache key for one generation request.
// Answers are serialized in sorted key order, so the hash does not depend on
// map iteration or database row order.
func Key(answers map[string]models.AnswerValue, model string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		payload, _ := json.Marshal(answers[k])
		b.WriteString(k)
		b.WriteByte('=')
		b.Write(payload)
		b.WriteByte(';')
	}
	b.WriteString(model)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// RedisCache stores entries as JSON values with a server-side TTL
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a Redis-backed cache with the given TTL
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get retrieves a cached generation, reporting a miss on any backend error
func (c *RedisCache) Get(ctx context.Context, key string) (*models.GeneratedGuidelines, bool) {
	payload, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("cache get failed", zap.Error(err))
		}
		return nil, false
	}

	guidelines := &models.GeneratedGuidelines{}
	if err := json.Unmarshal(payload, guidelines); err != nil {
		zap.L().Warn("cache entry undecodable, dropping", zap.String("key", key), zap.Error(err))
		c.rdb.Del(ctx, keyPrefix+key)
		return nil, false
	}
	return guidelines, true
}

// Set stores a generation result, logging instead of failing on error
func (c *RedisCache) Set(ctx context.Context, key string, guidelines *models.GeneratedGuidelines) {
	payload, err := json.Marshal(guidelines)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		zap.L().Warn("cache set failed", zap.Error(err))
	}
}

// Clear drops all cached guidelines
func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		zap.L().Warn("cache clear scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		c.rdb.Del(ctx, keys...)
	}
}

// Stats counts live entries. Redis evicts expired keys itself, so expired is
// always zero here.
func (c *RedisCache) Stats(ctx context.Context) Stats {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	count := 0
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		zap.L().Warn("cache stats scan failed", zap.Error(err))
	}
	return Stats{TotalEntries: count, ValidEntries: count}
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is the in-process fallback used when Redis is not configured
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache with the given TTL
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a cached generation if present and not expired. Entries are
// stored serialized, so every hit returns its own copy and callers cannot
// mutate the cached value.
func (c *MemoryCache) Get(ctx context.Context, key string) (*models.GeneratedGuidelines, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}

	guidelines := &models.GeneratedGuidelines{}
	if err := json.Unmarshal(entry.payload, guidelines); err != nil {
		return nil, false
	}
	return guidelines, true
}

// Set stores a generation result
func (c *MemoryCache) Set(ctx context.Context, key string, guidelines *models.GeneratedGuidelines) {
	payload, err := json.Marshal(guidelines)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{payload: payload, expiresAt: c.now().Add(c.ttl)}
}

// Clear drops all entries
func (c *MemoryCache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
}

// Stats counts valid and expired entries
func (c *MemoryCache) Stats(ctx context.Context) Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{TotalEntries: len(c.entries)}
	now := c.now()
	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			stats.ExpiredEntries++
		} else {
			stats.ValidEntries++
		}
	}
	return stats
}
