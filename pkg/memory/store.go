package memory

import (
	"slices"
	"sync"

	"github.com/pkg/errors"

	"codeberg.org/n30w/nimi/pkg/utils"
)

var ErrNotFound = errors.New("not found")

// Store keeps the most recent values of T, each addressed by a key. Stored
// values are treated as immutable snapshots: readers get the same value a
// writer saved, never a partially built one.
type Store[T any] struct {
	mu    sync.RWMutex
	queue *utils.FixedQueue[T]
	key   func(T) string
}

// NewStore returns a Store that remembers at most capacity values.
func NewStore[T any](capacity int, key func(T) string) (*Store[T], error) {
	q, err := utils.NewFixedQueue[T](capacity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create store queue")
	}

	return &Store[T]{
		queue: q,
		key:   key,
	}, nil
}

// Save records v, evicting the oldest value when full.
func (s *Store[T]) Save(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.queue.Enqueue(v)
	if err != nil {
		return errors.Wrap(err, "failed to save to store")
	}

	return nil
}

// Get returns the value saved under key.
func (s *Store[T]) Get(key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.queue.ToSlice() {
		if s.key(v) == key {
			return v, nil
		}
	}

	var zero T

	return zero, errors.Wrapf(ErrNotFound, "key %q", key)
}

// Recent returns up to n values, newest first. n <= 0 returns all.
func (s *Store[T]) Recent(n int) []T {
	s.mu.RLock()
	all := s.queue.ToSlice()
	s.mu.RUnlock()

	slices.Reverse(all)

	if n > 0 && n < len(all) {
		all = all[:n]
	}

	return all
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queue.Len()
}
