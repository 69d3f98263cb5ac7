package core

import "fmt"

// Table is the contract the store and manager need from a table value. The
// core never inspects table contents beyond this check.
type Table interface {
	Validate() error
}

// Store holds tables in memory under caller-chosen keys for the lifetime of
// a session. Keys keep their insertion order. Overwriting a key keeps its
// original position.
//
// Store performs no locking. Callers sharing a Store across goroutines must
// serialise access.
type Store[T Table] struct {
	tables map[string]T
	keys   []string
}

// NewStore creates an empty store.
func NewStore[T Table]() *Store[T] {
	return &Store[T]{
		tables: make(map[string]T),
	}
}

// Add stores t under key, replacing any existing entry.
// Returns an error wrapping ErrInvalidTable if t is not a valid table; the
// store is left unchanged in that case.
func (s *Store[T]) Add(key string, t T) error {
	if any(t) == nil {
		return fmt.Errorf("add %q: %w: value is nil", key, ErrInvalidTable)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("add %q: %w: %w", key, ErrInvalidTable, err)
	}

	if _, exists := s.tables[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.tables[key] = t
	return nil
}

// Get returns the table stored under key.
// The boolean is false if the key is unknown.
func (s *Store[T]) Get(key string) (T, bool) {
	t, ok := s.tables[key]
	return t, ok
}

// Keys returns all keys in insertion order.
func (s *Store[T]) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of stored tables.
func (s *Store[T]) Len() int {
	return len(s.tables)
}

// Remove deletes key and reports whether it was present.
func (s *Store[T]) Remove(key string) bool {
	if _, ok := s.tables[key]; !ok {
		return false
	}
	delete(s.tables, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every table.
func (s *Store[T]) Clear() {
	s.tables = make(map[string]T)
	s.keys = nil
}
