package registry

import (
	"context"
	"time"

	"github.com/killallgit/podradio/internal/models"
	"github.com/killallgit/podradio/internal/services/cache"
)

// CachedAccessor memoizes successful registry reads for a TTL. Errors are
// never cached, so a broken singles file is retried on the next call.
type CachedAccessor struct {
	inner   Accessor
	ttl     time.Duration
	feeds   *cache.MemoryCache[[]models.FeedDescriptor]
	singles *cache.MemoryCache[[]models.SingleDescriptor]
}

// NewCachedAccessor wraps inner with a TTL cache keyed by language
func NewCachedAccessor(inner Accessor, ttl time.Duration, opts ...cache.Option) *CachedAccessor {
	maxItems := len(AllLanguages)
	return &CachedAccessor{
		inner:   inner,
		ttl:     ttl,
		feeds:   cache.NewMemoryCache[[]models.FeedDescriptor](maxItems, opts...),
		singles: cache.NewMemoryCache[[]models.SingleDescriptor](maxItems, opts...),
	}
}

// GetFeeds returns the cached feed list of lang, loading it on a miss
func (c *CachedAccessor) GetFeeds(ctx context.Context, lang Language) ([]models.FeedDescriptor, error) {
	return cachedRead(ctx, c.feeds, lang, c.ttl, c.inner.GetFeeds)
}

// GetSingles returns the cached singles of lang, loading them on a miss
func (c *CachedAccessor) GetSingles(ctx context.Context, lang Language) ([]models.SingleDescriptor, error) {
	return cachedRead(ctx, c.singles, lang, c.ttl, c.inner.GetSingles)
}

// Invalidate drops every cached entry
func (c *CachedAccessor) Invalidate() {
	c.feeds.Clear()
	c.singles.Clear()
}

// Stats reports feed and singles cache statistics
func (c *CachedAccessor) Stats() (feeds, singles cache.CacheStats) {
	return c.feeds.Stats(), c.singles.Stats()
}

// Close stops the cache sweepers
func (c *CachedAccessor) Close() {
	c.feeds.Stop()
	c.singles.Stop()
}

func cachedRead[T any](ctx context.Context, store *cache.MemoryCache[[]T], lang Language, ttl time.Duration, load func(context.Context, Language) ([]T, error)) ([]T, error) {
	if list, ok := store.Get(string(lang)); ok {
		return clone(list), nil
	}

	list, err := load(ctx, lang)
	if err != nil {
		return nil, err
	}
	store.Set(string(lang), clone(list), ttl)
	return clone(list), nil
}

// clone keeps callers from mutating cached slices
func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

var _ Accessor = (*CachedAccessor)(nil)
