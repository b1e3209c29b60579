package sim

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Store is an unbounded FIFO hand-off between producer and consumer stages.
// Unlike Resource it has no capacity and no waiters: Put never blocks and
// Get never suspends.
type Store[T any] struct {
	name  string
	items *linkedlistqueue.Queue
	puts  int
	gets  int
}

// NewStore creates an empty store.
func NewStore[T any](name string) *Store[T] {
	return &Store[T]{
		name:  name,
		items: linkedlistqueue.New(),
	}
}

// Name returns the store label.
func (s *Store[T]) Name() string { return s.name }

// Put appends item to the tail.
func (s *Store[T]) Put(item T) {
	s.items.Enqueue(item)
	s.puts++
}

// Get removes and returns the head item, or false if the store is empty.
func (s *Store[T]) Get() (T, bool) {
	var zero T
	v, ok := s.items.Dequeue()
	if !ok {
		return zero, false
	}
	s.gets++
	return v.(T), true
}

// Len returns the number of items waiting.
func (s *Store[T]) Len() int { return s.items.Size() }

// Totals returns how many items were put and taken over the store's lifetime.
func (s *Store[T]) Totals() (puts, gets int) { return s.puts, s.gets }
