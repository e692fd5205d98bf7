package cache_test

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/varlayer/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRU(2, cache.WithEvictCallback(func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, evicted)
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := cache.NewLRU(4,
		cache.WithTTL[string, string](time.Minute),
		cache.WithClock[string, string](clock),
	)
	c.Put("k", "v")

	now = now.Add(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_RemoveAndClear(t *testing.T) {
	t.Parallel()

	removed := 0
	c := cache.NewLRU(4, cache.WithEvictCallback(func(string, int) { removed++ }))
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 3, removed)
}

func TestLRU_PanicsOnBadCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.NewLRU[string, int](0) })
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](50)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g*200 + i) % 75)
				c.Put(k, i)
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
