package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Minute)
	l.now = func() time.Time { return base }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		result := l.Check(ctx, "org:1:guidelines")
		assert.True(t, result.Allowed, "request %d should be allowed", i)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result := l.Check(ctx, "org:1:guidelines")
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, base.Add(time.Minute), result.ResetAt)
}

func TestMemoryLimiterDeniedRequestsAreNotRecorded(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	assert.True(t, l.Check(ctx, "k").Allowed)
	for i := 0; i < 10; i++ {
		assert.False(t, l.Check(ctx, "k").Allowed)
	}

	// The single recorded entry expires after one window, regardless of how
	// many denied checks happened in between.
	now = base.Add(61 * time.Second)
	assert.True(t, l.Check(ctx, "k").Allowed)
}

func TestMemoryLimiterSlidingWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	assert.True(t, l.Check(ctx, "k").Allowed)

	now = base.Add(30 * time.Second)
	assert.True(t, l.Check(ctx, "k").Allowed)
	assert.False(t, l.Check(ctx, "k").Allowed)

	// First entry falls out of the window, freeing one slot.
	now = base.Add(61 * time.Second)
	result := l.Check(ctx, "k")
	assert.True(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Check(ctx, "org:1:guidelines").Allowed)
	assert.False(t, l.Check(ctx, "org:1:guidelines").Allowed)
	assert.True(t, l.Check(ctx, "org:2:guidelines").Allowed)
}
