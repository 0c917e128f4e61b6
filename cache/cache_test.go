package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattiasalardi/VDP/models"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestKeyIsStableAcrossOrderings(t *testing.T) {
	answers := map[string]models.AnswerValue{
		"team_importance": {ScaleValue: intPtr(8)},
		"risk_tolerance":  {ScaleValue: intPtr(4)},
		"market_size":     {ChoiceValue: strPtr("large_existing")},
	}

	first := Key(answers, "claude-3.5-sonnet")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Key(answers, "claude-3.5-sonnet"))
	}
}

func TestKeyVariesWithContent(t *testing.T) {
	a := map[string]models.AnswerValue{"team_importance": {ScaleValue: intPtr(8)}}
	b := map[string]models.AnswerValue{"team_importance": {ScaleValue: intPtr(9)}}

	assert.NotEqual(t, Key(a, "gpt-4o"), Key(b, "gpt-4o"))
	assert.NotEqual(t, Key(a, "gpt-4o"), Key(a, "gpt-4o-mini"))
}

func sampleResult() *models.GeneratedGuidelines {
	return &models.GeneratedGuidelines{
		Categories: []models.GuidelineCategory{
			{Section: "team_assessment", Name: "Team Assessment", Weight: 1.0, Criteria: []string{"a"}, RedFlags: []string{"b"}},
		},
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	ctx := context.Background()

	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)

	c.Set(ctx, "k1", sampleResult())
	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "team_assessment", got.Categories[0].Section)
}

func TestMemoryCacheExpiry(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c := NewMemoryCache(24 * time.Hour)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	c.Set(ctx, "k1", sampleResult())

	now = base.Add(23 * time.Hour)
	_, ok := c.Get(ctx, "k1")
	assert.True(t, ok)

	now = base.Add(25 * time.Hour)
	_, ok = c.Get(ctx, "k1")
	assert.False(t, ok)

	stats := c.Stats(ctx)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 0, stats.ValidEntries)
	assert.Equal(t, 1, stats.ExpiredEntries)
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	ctx := context.Background()

	c.Set(ctx, "k1", sampleResult())
	c.Set(ctx, "k2", sampleResult())
	assert.Equal(t, 2, c.Stats(ctx).TotalEntries)

	c.Clear(ctx)
	assert.Equal(t, 0, c.Stats(ctx).TotalEntries)
	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)
}

func TestMemoryCacheHitsAreIsolated(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	ctx := context.Background()

	c.Set(ctx, "k1", sampleResult())

	first, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	first.Categories[0].Section = "mutated"
	first.Categories[0].Criteria[0] = "mutated"

	second, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "team_assessment", second.Categories[0].Section)
	assert.Equal(t, "a", second.Categories[0].Criteria[0])
}
