// Package store provides an insertion-ordered collection with stable ids.
//
// Ids are assigned from a monotonically increasing counter and are never
// reused, so removing one record never invalidates another record's id.
// Removal leaves a tombstone that is compacted lazily on a later insert,
// which keeps Insert and Remove amortized O(1) and makes batch removal
// order-independent.
package store

import (
	"iter"
)

// ID identifies a record inside a single Store.
type ID int

type slot[T any] struct {
	id    ID
	alive bool
	value T
}

// Store holds records of type T keyed by ID.
type Store[T any] struct {
	next  ID
	slots []slot[T]
	index map[ID]int // id -> position in slots
	dead  int
}

// New creates an empty store.
func New[T any]() *Store[T] {
	return &Store[T]{index: make(map[ID]int)}
}

// FromSlice creates a store holding values in order, with fresh ids.
func FromSlice[T any](values []T) *Store[T] {
	s := New[T]()
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

// Insert adds a record and returns its new id.
// Inserting while ranging over All may compact storage; collect ids first.
func (s *Store[T]) Insert(v T) ID {
	s.lazyInit()
	if s.dead > 0 && s.dead >= len(s.slots)/2 {
		s.compact()
	}

	id := s.next
	s.next++
	s.index[id] = len(s.slots)
	s.slots = append(s.slots, slot[T]{id: id, alive: true, value: v})
	return id
}

// Remove deletes the record with the given id and returns it.
// Removing an unknown id is a no-op.
func (s *Store[T]) Remove(id ID) (T, bool) {
	var zero T
	pos, ok := s.index[id]
	if !ok {
		return zero, false
	}
	v := s.slots[pos].value
	s.slots[pos] = slot[T]{id: id}
	delete(s.index, id)
	s.dead++
	return v, true
}

// RemoveAll deletes every listed id and returns how many were present.
// The order of ids does not matter.
func (s *Store[T]) RemoveAll(ids []ID) int {
	n := 0
	for _, id := range ids {
		if _, ok := s.Remove(id); ok {
			n++
		}
	}
	return n
}

// Get returns a copy of the record with the given id.
func (s *Store[T]) Get(id ID) (T, bool) {
	var zero T
	pos, ok := s.index[id]
	if !ok {
		return zero, false
	}
	return s.slots[pos].value, true
}

// Ptr returns a pointer to the record for in-place mutation, or nil.
// The pointer is valid until the next Insert.
func (s *Store[T]) Ptr(id ID) *T {
	pos, ok := s.index[id]
	if !ok {
		return nil
	}
	return &s.slots[pos].value
}

// Contains reports whether id is live.
func (s *Store[T]) Contains(id ID) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of live records.
func (s *Store[T]) Len() int {
	return len(s.index)
}

// All yields every live record in insertion order. The yielded pointer
// may be used to mutate the record; removing records during iteration
// is allowed.
func (s *Store[T]) All() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := 0; i < len(s.slots); i++ {
			sl := &s.slots[i]
			if !sl.alive {
				continue
			}
			if !yield(sl.id, &sl.value) {
				return
			}
		}
	}
}

// IDs returns the live ids in insertion order.
func (s *Store[T]) IDs() []ID {
	ids := make([]ID, 0, s.Len())
	for id := range s.All() {
		ids = append(ids, id)
	}
	return ids
}

// Values returns copies of the live records in insertion order.
func (s *Store[T]) Values() []T {
	values := make([]T, 0, s.Len())
	for _, v := range s.All() {
		values = append(values, *v)
	}
	return values
}

// Clone returns a copy of the store keeping ids and order.
// clone is applied to each record; pass nil for a shallow copy.
func (s *Store[T]) Clone(clone func(T) T) *Store[T] {
	c := &Store[T]{
		next:  s.next,
		slots: make([]slot[T], 0, s.Len()),
		index: make(map[ID]int, s.Len()),
	}
	for id, v := range s.All() {
		value := *v
		if clone != nil {
			value = clone(value)
		}
		c.index[id] = len(c.slots)
		c.slots = append(c.slots, slot[T]{id: id, alive: true, value: value})
	}
	return c
}

func (s *Store[T]) lazyInit() {
	if s.index == nil {
		s.index = make(map[ID]int)
	}
}

// compact drops tombstones and rebuilds the index.
func (s *Store[T]) compact() {
	live := s.slots[:0]
	for _, sl := range s.slots {
		if sl.alive {
			s.index[sl.id] = len(live)
			live = append(live, sl)
		}
	}
	var zero slot[T]
	for i := len(live); i < len(s.slots); i++ {
		s.slots[i] = zero
	}
	s.slots = live
	s.dead = 0
}
