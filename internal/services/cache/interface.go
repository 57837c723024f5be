package cache

import "time"

// Cache is a keyed store whose entries expire after a TTL
type Cache[V any] interface {
	// Get retrieves a live value from the cache
	Get(key string) (V, bool)

	// Set stores a value with a TTL; a non-positive ttl uses the default
	Set(key string, value V, ttl time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// Clear removes all values from the cache
	Clear()
}

// CacheStats provides statistics about cache usage
type CacheStats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Entries   int
	MaxItems  int
}
