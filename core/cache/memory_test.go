package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	c := NewMemoryCache()
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 30*time.Minute))

	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	current = current.Add(29 * time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.True(t, ok, "entry must survive within its TTL")

	current = current.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok, "entry must expire after its TTL")

	// expired entries are evicted, not just hidden
	_, stillThere := c.entries["k"]
	assert.False(t, stillThere)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", []byte("old"), 0))
	require.NoError(t, c.Set(ctx, "k", []byte("new"), 0))

	val, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), val)
}
