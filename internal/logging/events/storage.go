package events

import "todomvc/internal/logging"

type StorageTracer struct{}

var Storage = StorageTracer{}

func (StorageTracer) Get(key string, found bool) {
	logging.Trace("storage.get", map[string]any{"key": key, "found": found})
}

func (StorageTracer) Put(key string, size int) {
	logging.Trace("storage.put", map[string]any{"key": key, "bytes": size})
}

// Failure logs an absorbed storage error.
func (StorageTracer) Failure(op, key string, err error) {
	logging.Warn("storage %s %q: %v", op, key, err)
	logging.Trace("storage.failure", map[string]any{"op": op, "key": key, "error": err.Error()})
}
