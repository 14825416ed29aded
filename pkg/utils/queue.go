package utils

import (
	"github.com/pkg/errors"
)

// FixedQueue is a FIFO queue backed by a circular buffer. Once full, every
// new item overwrites the oldest one. It is not safe for concurrent use.
type FixedQueue[T any] struct {
	// data is the underlying slice that holds elements.
	data []T
	// head is the index of the oldest element.
	head int
	// size is the current number of elements in the queue.
	size int
}

// NewFixedQueue returns an empty queue that holds at most capacity items.
func NewFixedQueue[T any](capacity int) (*FixedQueue[T], error) {
	if capacity <= 0 {
		return nil, errors.Errorf("queue capacity must be > 0; got %d", capacity)
	}

	return &FixedQueue[T]{data: make([]T, capacity)}, nil
}

// Enqueue appends items in order, evicting the oldest entries as needed.
func (q *FixedQueue[T]) Enqueue(items ...T) error {
	if len(items) == 0 {
		return errors.New("no items provided to enqueue")
	}

	for _, item := range items {
		tail := (q.head + q.size) % len(q.data)
		q.data[tail] = item

		if q.size == len(q.data) {
			q.head = (q.head + 1) % len(q.data)
		} else {
			q.size++
		}
	}

	return nil
}

func (q *FixedQueue[T]) Len() int {
	return q.size
}

// ToSlice copies the queue contents oldest first. The queue is left as is.
func (q *FixedQueue[T]) ToSlice() []T {
	out := make([]T, q.size)
	for i := range q.size {
		out[i] = q.data[(q.head+i)%len(q.data)]
	}
	return out
}
