package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(t *testing.T, maxItems int) (*MemoryCache[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache[string](maxItems, WithClock(clock.Now), WithSweepInterval(time.Hour))
	t.Cleanup(c.Stop)
	return c, clock
}

func TestMemoryCache_GetSet(t *testing.T) {
	c, clock := newTestCache(t, 0)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "alpha", time.Minute)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)

	clock.Advance(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry should expire")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 0, stats.Entries)
}

func TestMemoryCache_DefaultTTL(t *testing.T) {
	c, clock := newTestCache(t, 0)

	c.Set("a", "alpha", 0)
	clock.Advance(DefaultTTL - time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c, _ := newTestCache(t, 0)

	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestMemoryCache_Eviction(t *testing.T) {
	c, _ := newTestCache(t, 2)

	c.Set("short", "1", time.Minute)
	c.Set("long", "2", time.Hour)
	c.Set("new", "3", time.Hour)

	_, ok := c.Get("short")
	assert.False(t, ok, "entry closest to expiry is evicted")
	_, ok = c.Get("long")
	assert.True(t, ok)
	_, ok = c.Get("new")
	assert.True(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, 2, stats.MaxItems)

	// Overwriting an existing key does not evict
	c.Set("new", "4", time.Hour)
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestMemoryCache_ExpiredEvictedFirst(t *testing.T) {
	c, clock := newTestCache(t, 2)

	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Hour)
	clock.Advance(2 * time.Minute)
	c.Set("c", "3", time.Minute)

	_, ok := c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c, _ := newTestCache(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("k", "v", time.Minute)
				c.Get("k")
			}
		}()
	}
	wg.Wait()

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	c := NewMemoryCache[int](0, WithSweepInterval(time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	c.Stop()
	c.Stop()
}
