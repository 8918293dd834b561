// Package cache implements a generic, in-process LRU cache bounded by weight.
//
// Design points:
//   - A map gives O(1) key lookup and an intrusive doubly linked list keeps
//     recency order (head = most recently used, tail = least recently used)
//   - Capacity is measured by a pluggable Weigher; the default charges one
//     unit per entry, so an unweighted cache is just a weighted one
//   - Item count and total weight are maintained incrementally
//   - A single mutex guards all state; every operation, Get included, is one
//     critical section
//   - A lone entry heavier than the capacity is kept rather than evicted
package cache
