package main

import (
	"lrucache/internal/cache"
)

// runLRUDemo shows recency-based eviction on a two-entry cache.
func runLRUDemo() {
	c := cache.New[string, string](cache.Config[string]{
		Capacity: 2,
		Name:     "lru-demo",
	})

	c.Set("a", "A")
	c.Set("b", "B")

	// Reading "a" moves it to the front, leaving "b" at the tail.
	if v, ok := c.Get("a"); ok {
		mainLog.Infof("GET a = %q (touches a -> MRU)", v)
	}

	// A third key overflows the two slots and the tail entry goes.
	c.Set("c", "C")
	if c.Lookup("b").IsNone() {
		mainLog.Info("GET b: missing (evicted as LRU)")
	}
	mainLog.Infof("keys after eviction (MRU->LRU): %v", c.Keys())
	mainLog.Debugf("lru-demo contents:\n%v", c)
}

// runOversizedDemo shows that a single value heavier than the whole capacity
// is kept until something else arrives.
func runOversizedDemo() {
	c := cache.New[string, string](cache.Config[string]{
		Capacity: 4,
		Weigher:  cache.LenWeigher[string](),
		Name:     "oversized-demo",
	})

	c.Set("big", "12345")
	mainLog.Infof("oversized value kept: items=%d weight=%d capacity=%d",
		c.ItemCount(), c.TotalWeight(), c.Capacity())

	c.Set("s", "x")
	mainLog.Infof("after small insert keys=%v weight=%d", c.Keys(),
		c.TotalWeight())
}
