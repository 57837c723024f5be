package feeds

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes successful fetches for the lifetime of one sampling call.
// Concurrent fetches of the same URL share a single request; failures are
// not remembered so a later attempt retries them.
type Cache struct {
	fetcher Fetcher
	group   singleflight.Group

	mu   sync.RWMutex
	docs map[string]*Document
}

// NewCache wraps fetcher with a fresh, empty cache
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		docs:    make(map[string]*Document),
	}
}

// Fetch returns the cached document for url or fetches it
func (c *Cache) Fetch(ctx context.Context, url string) (*Document, error) {
	if doc, ok := c.lookup(url); ok {
		return doc, nil
	}

	v, err, _ := c.group.Do(url, func() (interface{}, error) {
		if doc, ok := c.lookup(url); ok {
			return doc, nil
		}

		doc, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.docs[url] = doc
		c.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Document), nil
}

// Len reports how many documents are cached
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func (c *Cache) lookup(url string) (*Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[url]
	return doc, ok
}
