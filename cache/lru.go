package cache

// entry is a node in the per-shard recency list.
// Front is the most recently used entry, back the eviction candidate.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// recency is an intrusive doubly-linked list. Not safe for concurrent use;
// the owning shard holds the lock.
type recency[K comparable, V any] struct {
	front, back *entry[K, V]
	n           int
}

func (l *recency[K, V]) len() int { return l.n }

func (l *recency[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = l.front
	if l.front != nil {
		l.front.prev = e
	} else {
		l.back = e
	}
	l.front = e
	l.n++
}

func (l *recency[K, V]) touch(e *entry[K, V]) {
	if e == l.front {
		return
	}
	l.unlink(e)
	l.pushFront(e)
}

// popBack removes and returns the least recently used entry, or nil.
func (l *recency[K, V]) popBack() *entry[K, V] {
	e := l.back
	if e != nil {
		l.unlink(e)
	}
	return e
}

func (l *recency[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.front = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.back = e.prev
	}
	e.prev, e.next = nil, nil
	l.n--
}

func (l *recency[K, V]) clear() {
	l.front, l.back, l.n = nil, nil, 0
}
