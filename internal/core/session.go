package core

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Session bundles the per-process state of the application: the in-memory
// store and the persistence manager. It is created once at startup and
// passed to the HTTP server or CLI commands that need it.
type Session[T Table] struct {
	ID        string
	StartedAt time.Time
	Store     *Store[T]
	Manager   *Manager[T]
}

// NewSession creates a session with an empty store and a manager rooted at
// baseDir.
func NewSession[T Table](baseDir string, codecs Codecs[T]) (*Session[T], error) {
	manager, err := NewManager(baseDir, codecs)
	if err != nil {
		return nil, err
	}

	s := &Session[T]{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Store:     NewStore[T](),
		Manager:   manager,
	}

	slog.Info("session started", "session_id", s.ID, "base_dir", manager.BaseDir())
	return s, nil
}

// Persist saves the stored table under key to disk.
// Returns an error wrapping ErrNotFound if the store has no such key.
func (s *Session[T]) Persist(key string, format Format) (string, error) {
	t, ok := s.Store.Get(key)
	if !ok {
		return "", &TableNotFoundError{Key: key}
	}
	return s.Manager.Save(key, t, format)
}

// Restore loads key from disk and adds it to the store, replacing any
// table already held under that key.
func (s *Session[T]) Restore(key string, format Format) (T, error) {
	t, err := s.Manager.Load(key, format)
	if err != nil {
		return t, err
	}
	if err := s.Store.Add(key, t); err != nil {
		var zero T
		return zero, err
	}
	return t, nil
}

// Close ends the session and drops every in-memory table. Persisted files
// are left in place.
func (s *Session[T]) Close() {
	n := s.Store.Len()
	s.Store.Clear()
	slog.Info("session closed",
		"session_id", s.ID,
		"tables_dropped", n,
		"duration", time.Since(s.StartedAt).Round(time.Millisecond),
	)
}

// TableNotFoundError reports a key that is not held in the session store.
// It matches ErrNotFound.
type TableNotFoundError struct {
	Key string
}

func (e *TableNotFoundError) Error() string {
	return "table not found in store: " + e.Key
}

func (e *TableNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
