// Package queue provides a growable FIFO ring buffer.
package queue

// Queue is a FIFO queue backed by a ring buffer. Enqueue and Dequeue are O(1) amortized.
// The zero value is an empty queue ready to use.
type Queue[T any] struct {
	buf   []T
	head  int
	count int
}

// New creates a Queue holding items in order
func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{}
	for _, item := range items {
		q.Enqueue(item)
	}
	return q
}

// Enqueue adds item at the back of the queue
func (q *Queue[T]) Enqueue(item T) {
	if q.count == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = item
	q.count++
}

// Dequeue removes and returns the item at the front of the queue
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}

	item := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return item, true
}

// Peek returns the item at the front of the queue without removing it
func (q *Queue[T]) Peek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.buf[q.head], true
}

// Len returns the number of queued items
func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) grow() {
	size := len(q.buf) * 2
	if size == 0 {
		size = 8
	}

	buf := make([]T, size)
	for i := 0; i < q.count; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
