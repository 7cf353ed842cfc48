package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCache_GetSetExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewRenderCache(time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", []byte{1, 2, 3})
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)

	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}

func TestRenderCache_NilSafe(t *testing.T) {
	var c *RenderCache
	c.Set("k", []byte{1})
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	c.Clear()
}

func TestGenerateCacheKey_Deterministic(t *testing.T) {
	a, err := GenerateCacheKey("x", 1, []float64{1, 2})
	require.NoError(t, err)
	b, err := GenerateCacheKey("x", 1, []float64{1, 2})
	require.NoError(t, err)
	c, err := GenerateCacheKey("x", 2, []float64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
