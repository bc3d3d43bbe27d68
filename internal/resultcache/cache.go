// Package resultcache memoizes sanitized analysis results for the
// lifetime of the process. The cache is bounded (LRU) and collapses
// concurrent callers of the same key into a single computation, so two
// requests with identical content trigger at most one model call.
package resultcache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity bounds the cache when the caller does not.
const DefaultCapacity = 512

// Cache is a threadsafe, bounded memoization cache. Values are stored
// once and never mutated; Get returns the stored value as-is.
type Cache[V any] struct {
	lru    *lru.Cache[string, V]
	flight singleflight.Group
}

func New[V any](capacity int) (*Cache[V], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l, err := lru.New[string, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: l}, nil
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[V]) Put(key string, value V) {
	c.lru.Add(key, value)
}

func (c *Cache[V]) Clear() {
	c.lru.Purge()
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// GetOrCompute returns the cached value for key, or runs compute once
// and stores its result. Concurrent callers with the same key share one
// in-flight computation. Failed computations are not cached.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}
	out, err, _ := c.flight.Do(key, func() (any, error) {
		// Re-check under the flight: a previous flight may have stored
		// the value between our miss and this call.
		if v, ok := c.lru.Get(key); ok {
			return v, nil
		}
		v, err := compute(ctx)
		if err != nil {
			return v, err
		}
		c.lru.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return out.(V), nil
}
