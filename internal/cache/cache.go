package cache

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// ErrInvalidCapacity is the reason New refuses a non-positive capacity.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// Config controls cache capacity and weighting.
//
//   - Capacity must be > 0; New panics otherwise
//   - Weigher == nil means UnitWeigher (capacity is an item count)
//   - Name only labels log lines
type Config[V any] struct {
	Capacity int
	Weigher  Weigher[V]
	Name     string
}

// Validate reports whether cfg can be used to construct a cache.
func (cfg Config[V]) Validate() error {
	if cfg.Capacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.Capacity)
	}
	return nil
}

// Stats is a point-in-time view of the cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64

	Items    int
	Weight   int
	Capacity int
}

// Cache is a concurrency-safe LRU cache bounded by total weight.
//
// A map indexes entries by key and an intrusive list keeps them in recency
// order. Both, together with the counters, are guarded by one mutex that every
// operation holds for its full duration. There is no read lock: Get reorders
// the list.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	name     string
	capacity int
	weigher  Weigher[V]

	items map[K]*entry[K, V]
	lru   recencyList[K, V]

	totalWeight int

	hits      uint64
	misses    uint64
	evictions uint64
}

// New constructs a cache.
//
// A non-positive capacity leaves no state that can satisfy the cache
// invariants, so New panics instead of returning an error. Callers that take
// the capacity from user input should run cfg.Validate first.
func New[K comparable, V any](cfg Config[V]) *Cache[K, V] {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	w := cfg.Weigher
	if w == nil {
		w = UnitWeigher[V]()
	}

	c := &Cache[K, V]{
		name:     cfg.Name,
		capacity: cfg.Capacity,
		weigher:  w,
		items:    make(map[K]*entry[K, V]),
	}

	log.Infof("Created cache %q with capacity %d", c.name, c.capacity)

	return c
}

// Get returns the value stored for key and marks it most recently used.
// A missing key returns the zero value and false and changes nothing.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	c.lru.promoteToHead(e)
	return e.value, true
}

// Lookup is Get returning an fn.Option.
func (c *Cache[K, V]) Lookup(key K) fn.Option[V] {
	v, ok := c.Get(key)
	if !ok {
		return fn.None[V]()
	}
	return fn.Some(v)
}

// Set stores value under key and marks it most recently used, then evicts
// from the tail until the total weight fits the capacity or only one entry is
// left.
//
// Complexity:
//   - O(1) to locate/insert
//   - O(1) per evicted entry
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	weight := weigh(c.weigher, value)

	// admitted is true when this Set changed the weight charged for key.
	admitted := true
	if e, ok := c.items[key]; ok {
		admitted = weight != e.weight
		c.totalWeight += weight - e.weight
		e.value = value
		e.weight = weight
		c.lru.promoteToHead(e)
	} else {
		e := &entry[K, V]{
			key:    key,
			value:  value,
			weight: weight,
		}
		c.lru.promoteToHead(e)
		c.items[key] = e
		c.totalWeight += weight
	}

	c.evictLocked()

	if admitted && c.totalWeight > c.capacity {
		log.Warnf("Cache %q retaining single entry %v with weight %d "+
			"above capacity %d", c.name, key, c.totalWeight,
			c.capacity)
	}
}

// evictLocked drops least recently used entries while the cache is over
// capacity. A single remaining entry is never evicted, whatever its weight.
func (c *Cache[K, V]) evictLocked() {
	for c.totalWeight > c.capacity && c.lru.len > 1 {
		victim := c.lru.back()
		c.lru.detach(victim)
		delete(c.items, victim.key)
		c.totalWeight -= victim.weight
		c.evictions++

		log.Debugf("Cache %q evicted %v (weight=%d), total weight "+
			"now %d/%d", c.name, victim.key, victim.weight,
			c.totalWeight, c.capacity)
	}

	log.Tracef("Cache %q contents:\n%v", c.name,
		newLogClosure(func() string {
			return c.describeLocked()
		}),
	)
}

// SetWeigher swaps the weight function. Entries already stored keep the
// weight they were charged on insertion; nothing is re-weighted. A nil w
// restores UnitWeigher.
func (c *Cache[K, V]) SetWeigher(w Weigher[V]) {
	if w == nil {
		w = UnitWeigher[V]()
	}

	c.mu.Lock()
	c.weigher = w
	c.mu.Unlock()
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ItemCount is an alias of Len.
func (c *Cache[K, V]) ItemCount() int {
	return c.Len()
}

// TotalWeight returns the sum of the weights of all stored entries.
func (c *Cache[K, V]) TotalWeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalWeight
}

// Capacity returns the weight bound the cache was built with.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Items:     len(c.items),
		Weight:    c.totalWeight,
		Capacity:  c.capacity,
	}
}

// Keys returns keys in MRU -> LRU order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]K, 0, c.lru.len)
	c.lru.forEach(func(e *entry[K, V]) bool {
		out = append(out, e.key)
		return true
	})
	return out
}

// pair is one snapshotted key/value.
type pair[K comparable, V any] struct {
	key   K
	value V
}

// Entries returns the stored pairs from most to least recently used.
//
// The pairs are copied under the lock when Entries is called, so the sequence
// is a point-in-time snapshot: it can be ranged over any number of times and
// never observes later mutations. Iterating does not touch recency.
func (c *Cache[K, V]) Entries() iter.Seq2[K, V] {
	c.mu.Lock()
	snapshot := make([]pair[K, V], 0, c.lru.len)
	c.lru.forEach(func(e *entry[K, V]) bool {
		snapshot = append(snapshot, pair[K, V]{e.key, e.value})
		return true
	})
	c.mu.Unlock()

	return func(yield func(K, V) bool) {
		for _, p := range snapshot {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}
