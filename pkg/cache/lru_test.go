package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatekit/gatekit/pkg/cache"
)

func TestLRU_GetSet(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRU_Delete(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	c.Set("a", 1)

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 0, c.Len())
}

func TestLRU_Purge(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestNewLRU_PanicsOnInvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.NewLRU[string, int](0) })
}
