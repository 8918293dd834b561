package cache

import (
	"fmt"
	"strings"
)

// describeSentinel terminates every Describe listing.
const describeSentinel = "•"

// Describe renders the cache as "<key>: <value>" lines from most to least
// recently used, followed by a final "•" line. Debugging only.
func (c *Cache[K, V]) Describe() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.describeLocked()
}

// String implements fmt.Stringer.
func (c *Cache[K, V]) String() string {
	return c.Describe()
}

func (c *Cache[K, V]) describeLocked() string {
	lines := make([]string, 0, c.lru.len+1)
	c.lru.forEach(func(e *entry[K, V]) bool {
		lines = append(lines, fmt.Sprintf("%v: %v", e.key, e.value))
		return true
	})
	lines = append(lines, describeSentinel)
	return strings.Join(lines, "\n")
}
