// Package cache provides the bounded, thread-safe LRU that holds schema
// collections between tool calls.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU maps names to values, evicting the least recently used entry once
// maxItems is reached.
type LRU[V any] struct {
	cache *lru.Cache[string, V]
}

// NewLRU creates a cache with room for maxItems values. onEvict, if not nil,
// runs for every value pushed out by capacity or removed explicitly.
func NewLRU[V any](maxItems int, onEvict func(name string, v V)) (*LRU[V], error) {
	c, err := lru.NewWithEvict[string, V](maxItems, onEvict)
	if err != nil {
		return nil, err
	}
	return &LRU[V]{cache: c}, nil
}

// Get retrieves a value and marks it recently used.
func (c *LRU[V]) Get(name string) (V, bool) {
	return c.cache.Get(name)
}

// Peek retrieves a value without touching its recency.
func (c *LRU[V]) Peek(name string) (V, bool) {
	return c.cache.Peek(name)
}

// Put adds or replaces a value. It reports whether another value was evicted.
func (c *LRU[V]) Put(name string, v V) bool {
	return c.cache.Add(name, v)
}

// Remove deletes a value, reporting whether it was present.
func (c *LRU[V]) Remove(name string) bool {
	return c.cache.Remove(name)
}

// Names returns the cached names from oldest to newest.
func (c *LRU[V]) Names() []string {
	return c.cache.Keys()
}

// Len returns the current number of items in the cache.
func (c *LRU[V]) Len() int {
	return c.cache.Len()
}
