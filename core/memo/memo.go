// Package memo provides lazily populated, never evicted caches for values derived
// purely from their key, such as metadata computed from a reflect.Type.
package memo

import "sync"

// Cache maps keys to values computed on first use. Concurrent first lookups of the
// same key may compute the value more than once; the first stored value wins and
// every caller observes it.
type Cache[K comparable, V any] struct {
	m sync.Map
}

// Get returns the cached value for key, computing it with build when absent.
func (c *Cache[K, V]) Get(key K, build func(K) V) V {
	if v, ok := c.m.Load(key); ok {
		return v.(V) //nolint:forcetypeassert
	}

	v, _ := c.m.LoadOrStore(key, build(key))
	return v.(V) //nolint:forcetypeassert
}

// TryGet is Get for builders that can fail. Failures are returned and not cached.
func (c *Cache[K, V]) TryGet(key K, build func(K) (V, error)) (V, error) {
	if v, ok := c.m.Load(key); ok {
		return v.(V), nil //nolint:forcetypeassert
	}

	built, err := build(key)
	if err != nil {
		var zero V
		return zero, err
	}

	v, _ := c.m.LoadOrStore(key, built)
	return v.(V), nil //nolint:forcetypeassert
}

// Load returns the cached value for key, if any.
func (c *Cache[K, V]) Load(key K) (V, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true //nolint:forcetypeassert
}

// Len counts the cached entries.
func (c *Cache[K, V]) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
