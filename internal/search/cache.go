package search

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheEntry wraps a stored value with its expiry deadline
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is the injectable contract the aggregator stores results through, so
// a multi-instance deployment can swap in a shared backend without touching
// call sites.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T, ttl time.Duration)
}

// TTLCache is an in-process LRU cache with per-entry TTL. Expired entries are
// evicted on read; the LRU bound caps memory regardless of expiry.
type TTLCache[T any] struct {
	storage *lru.Cache[string, cacheEntry[T]]
}

// NewTTLCache creates a cache holding at most size entries.
// The lru cache is safe for concurrent use.
func NewTTLCache[T any](size int) *TTLCache[T] {
	c, _ := lru.New[string, cacheEntry[T]](size)
	return &TTLCache[T]{storage: c}
}

// Get returns the cached value for key unless it has expired
func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	entry, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(entry.expiresAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return entry.value, true
}

// Set stores value under key for ttl
func (c *TTLCache[T]) Set(key string, value T, ttl time.Duration) {
	c.storage.Add(key, cacheEntry[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}

// Len returns the number of resident entries, counting expired ones not yet
// evicted by a read.
func (c *TTLCache[T]) Len() int {
	return c.storage.Len()
}
