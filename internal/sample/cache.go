// Package sample holds the resources the console registers at startup.
package sample

import (
	"sort"
	"sync"
)

// Cache is managed through its whole exported surface.
type Cache struct {
	// Capacity bounds the number of entries. Zero means unbounded.
	Capacity int
	Name     string

	mu      sync.Mutex
	entries map[string]string
	hits    int
	misses  int
}

func NewCache(name string, capacity int) *Cache {
	return &Cache{
		Name:     name,
		Capacity: capacity,
		entries:  make(map[string]string),
	}
}

// Put stores value under key and reports whether it was stored.
func (c *Cache) Put(key, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && c.Capacity > 0 && len(c.entries) >= c.Capacity {
		return false
	}
	c.entries[key] = value
	return true
}

func (c *Cache) Lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]string)
}

func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Cache) GetSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache) GetHitRatio() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hits+c.misses == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.hits+c.misses)
}
