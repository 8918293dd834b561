package cache

// entry is one key/value pair plus its links in the recency list.
//
// The index and the list share the same *entry. The list owns the ordering;
// the index only uses the pointer to find a node in O(1).
type entry[K comparable, V any] struct {
	key   K
	value V

	// weight is the weigher result recorded when value was stored. Eviction
	// subtracts this, not a fresh weigher call.
	weight int

	moreRecent *entry[K, V]
	lessRecent *entry[K, V]
}

// recencyList is an intrusive doubly linked list ordered from most recently
// used (head) to least recently used (tail).
//
// Not safe for concurrent use; the Cache lock guards it.
type recencyList[K comparable, V any] struct {
	head *entry[K, V]
	tail *entry[K, V]
	len  int
}

// linked reports whether e is currently part of the list.
func (l *recencyList[K, V]) linked(e *entry[K, V]) bool {
	return e == l.head || e.moreRecent != nil
}

// promoteToHead makes e the most recently used entry. e may already be in the
// list or may be a fresh entry that was never linked.
func (l *recencyList[K, V]) promoteToHead(e *entry[K, V]) {
	if e == l.head {
		return
	}
	if l.linked(e) {
		l.detach(e)
	}

	e.moreRecent = nil
	e.lessRecent = l.head
	if l.head != nil {
		l.head.moreRecent = e
	} else {
		// Empty list, e is also the tail.
		l.tail = e
	}
	l.head = e
	l.len++
}

// detach unlinks e from the list without reinserting it.
func (l *recencyList[K, V]) detach(e *entry[K, V]) {
	if e.moreRecent != nil {
		e.moreRecent.lessRecent = e.lessRecent
	} else {
		l.head = e.lessRecent
	}
	if e.lessRecent != nil {
		e.lessRecent.moreRecent = e.moreRecent
	} else {
		l.tail = e.moreRecent
	}

	e.moreRecent = nil
	e.lessRecent = nil
	l.len--
}

// back returns the least recently used entry, or nil if the list is empty.
func (l *recencyList[K, V]) back() *entry[K, V] {
	return l.tail
}

// forEach walks the list head to tail, stopping early when fn returns false.
func (l *recencyList[K, V]) forEach(fn func(e *entry[K, V]) bool) {
	for e := l.head; e != nil; e = e.lessRecent {
		if !fn(e) {
			return
		}
	}
}
