// Package storagetest checks that a storage backend behaves like the
// others.
package storagetest

import (
	"bytes"
	"testing"
)

// Backend is the subset of storage.Backend exercised here.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// TestBackend runs the conformance checks against b.
func TestBackend(t *testing.T, b Backend) {
	t.Helper()

	if _, found, err := b.Get("missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v; want not found", found, err)
	}

	if err := b.Put("todos", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, found, err := b.Get("todos")
	if err != nil || !found {
		t.Fatalf("Get after Put = found %v, err %v", found, err)
	}
	if !bytes.Equal(got, []byte(`[{"id":1}]`)) {
		t.Fatalf("Get returned %q", got)
	}

	if err := b.Put("todos", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = b.Get("todos")
	if !bytes.Equal(got, []byte(`[]`)) {
		t.Fatalf("expected overwrite, got %q", got)
	}

	if err := b.Put("other", []byte(`"x"`)); err != nil {
		t.Fatalf("Put other: %v", err)
	}
	got, _, _ = b.Get("todos")
	if !bytes.Equal(got, []byte(`[]`)) {
		t.Fatalf("keys are not independent, todos = %q", got)
	}

	// callers may reuse the slice they passed to Put
	buf := []byte(`"y"`)
	if err := b.Put("alias", buf); err != nil {
		t.Fatalf("Put alias: %v", err)
	}
	buf[1] = 'z'
	got, _, _ = b.Get("alias")
	if !bytes.Equal(got, []byte(`"y"`)) {
		t.Fatalf("backend kept caller's slice, got %q", got)
	}
}
