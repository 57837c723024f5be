package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTTL applies when Set is called without a positive ttl
const DefaultTTL = time.Minute

// MemoryCache implements an in-memory TTL cache bounded by entry count
type MemoryCache[V any] struct {
	mu       sync.RWMutex
	items    map[string]*cacheItem[V]
	maxItems int
	now      func() time.Time

	hits, misses, sets, evictions atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type cacheItem[V any] struct {
	value  V
	expiry time.Time
}

// Option configures a MemoryCache
type Option func(*options)

type options struct {
	sweepInterval time.Duration
	now           func() time.Time
}

// WithSweepInterval sets how often expired entries are purged in the background
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemoryCache creates a cache holding at most maxItems entries
// (unbounded when maxItems <= 0) and starts its sweeper goroutine
func NewMemoryCache[V any](maxItems int, opts ...Option) *MemoryCache[V] {
	o := options{sweepInterval: time.Minute, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	mc := &MemoryCache[V]{
		items:    make(map[string]*cacheItem[V]),
		maxItems: maxItems,
		now:      o.now,
		stopCh:   make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.sweep(o.sweepInterval)

	return mc
}

// Get retrieves a live value from the cache
func (mc *MemoryCache[V]) Get(key string) (V, bool) {
	mc.mu.RLock()
	item, exists := mc.items[key]
	mc.mu.RUnlock()

	if !exists || mc.now().After(item.expiry) {
		if exists {
			mc.Delete(key)
		}
		mc.misses.Add(1)
		var zero V
		return zero, false
	}

	mc.hits.Add(1)
	return item.value, true
}

// Set stores a value in the cache with a TTL
func (mc *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	mc.mu.Lock()
	if _, exists := mc.items[key]; !exists {
		mc.makeRoomLocked()
	}
	mc.items[key] = &cacheItem[V]{value: value, expiry: mc.now().Add(ttl)}
	mc.mu.Unlock()

	mc.sets.Add(1)
}

// Delete removes a value from the cache
func (mc *MemoryCache[V]) Delete(key string) {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
}

// Clear removes all values from the cache
func (mc *MemoryCache[V]) Clear() {
	mc.mu.Lock()
	mc.items = make(map[string]*cacheItem[V])
	mc.mu.Unlock()
}

// Stats returns cache statistics
func (mc *MemoryCache[V]) Stats() CacheStats {
	mc.mu.RLock()
	entries := len(mc.items)
	mc.mu.RUnlock()

	return CacheStats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Sets:      mc.sets.Load(),
		Evictions: mc.evictions.Load(),
		Entries:   entries,
		MaxItems:  mc.maxItems,
	}
}

// Stop shuts down the sweeper. It is safe to call more than once.
func (mc *MemoryCache[V]) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache[V]) sweep(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpiredLocked()
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache[V]) removeExpiredLocked() {
	now := mc.now()
	for key, item := range mc.items {
		if now.After(item.expiry) {
			delete(mc.items, key)
			mc.evictions.Add(1)
		}
	}
}

// makeRoomLocked frees one slot when the cache is full: expired entries go
// first, then the entry closest to expiry
func (mc *MemoryCache[V]) makeRoomLocked() {
	if mc.maxItems <= 0 || len(mc.items) < mc.maxItems {
		return
	}

	mc.removeExpiredLocked()
	if len(mc.items) < mc.maxItems {
		return
	}

	var victim string
	var earliest time.Time
	for key, item := range mc.items {
		if victim == "" || item.expiry.Before(earliest) {
			victim, earliest = key, item.expiry
		}
	}
	delete(mc.items, victim)
	mc.evictions.Add(1)
}

var _ Cache[int] = (*MemoryCache[int])(nil)
