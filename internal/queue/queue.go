// Package queue implements a generic FIFO queue on a growable ring buffer.
package queue

const minCap = 4

// Queue is a FIFO queue. The zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
	head  int
	count int
}

// New creates a queue holding items, first item at the front.
func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, capFor(len(items)))}
	q.count = copy(q.items, items)
	return q
}

func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

// Push appends item to the back.
func (q *Queue[T]) Push(item T) {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)&(len(q.items)-1)] = item
	q.count++
}

// Front returns the front item without removing it.
func (q *Queue[T]) Front() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Pop removes and returns the front item.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & (len(q.items) - 1)
	q.count--
	if q.count == 0 {
		q.head = 0
	}
	return item, true
}

// Items returns a copy of queued items, front first.
func (q *Queue[T]) Items() []T {
	result := make([]T, q.count)
	n := copy(result, q.items[q.head:min(q.head+q.count, len(q.items))])
	copy(result[n:], q.items[:q.count-n])
	return result
}

// Clear removes all items.
func (q *Queue[T]) Clear() {
	clear(q.items)
	q.head = 0
	q.count = 0
}

// capFor returns the least power of 2 not less than n and minCap.
func capFor(n int) int {
	c := minCap
	for c < n {
		c <<= 1
	}
	return c
}

func (q *Queue[T]) grow() {
	items := make([]T, capFor(len(q.items)+1))
	copy(items, q.Items())
	q.items = items
	q.head = 0
}
