package cache

import "fmt"

// Weigher reports the cost of a value against the cache capacity. It must
// return a non-negative number.
//
// Set calls the weigher while holding the cache lock, so a weigher must not
// call back into the same cache; doing so deadlocks.
type Weigher[V any] func(V) int

// UnitWeigher charges every value one unit, which turns the capacity into a
// plain item count.
func UnitWeigher[V any]() Weigher[V] {
	return func(V) int { return 1 }
}

// LenWeigher charges a value by its length.
func LenWeigher[V ~string | ~[]byte]() Weigher[V] {
	return func(v V) int { return len(v) }
}

// weigh applies w to v and enforces the non-negative contract.
func weigh[V any](w Weigher[V], v V) int {
	n := w(v)
	if n < 0 {
		panic(fmt.Sprintf("cache: weigher returned negative weight %d", n))
	}
	return n
}
