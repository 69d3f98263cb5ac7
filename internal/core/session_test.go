package core

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSession_PersistRestore(t *testing.T) {
	s, err := NewSession(filepath.Join(t.TempDir(), "data"), testCodecs())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if s.ID == "" {
		t.Error("session ID should be set")
	}

	if err := s.Store.Add("orders", &testTable{Name: "orders"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Persist("orders", FormatPickle); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	s.Close()
	if s.Store.Len() != 0 {
		t.Fatalf("Close() left %d tables in the store", s.Store.Len())
	}

	got, err := s.Restore("orders", FormatPickle)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got.Name != "orders" {
		t.Errorf("Restore() name = %q, want orders", got.Name)
	}
	if _, ok := s.Store.Get("orders"); !ok {
		t.Error("Restore() should add the table to the store")
	}
}

func TestSession_PersistMissingKey(t *testing.T) {
	s, err := NewSession(t.TempDir(), testCodecs())
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Persist("nope", FormatCSV)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Persist() error = %v, want ErrNotFound", err)
	}
	if got := MapError(err).Code; got != "TBL001" {
		t.Errorf("MapError code = %q, want TBL001", got)
	}
}

func TestSession_RestoreMissingFile(t *testing.T) {
	s, err := NewSession(t.TempDir(), testCodecs())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Restore("nope", FormatCSV); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Restore() error = %v, want ErrNotFound", err)
	}
	if s.Store.Len() != 0 {
		t.Error("failed Restore() should not touch the store")
	}
}
