package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"todomvc/internal/logging/events"
)

// ErrClosed is reported by Flush once the driver has been closed.
var ErrClosed = errors.New("storage driver closed")

// Driver reads and writes JSON values on a Backend. Reads are synchronous
// and happen once per call. Writes are fire-and-forget: they are queued to a
// single writer goroutine so they land in call order without blocking the
// caller. Backend failures are logged and never returned to the caller.
type Driver struct {
	backend Backend

	mu     sync.Mutex
	closed bool
	writes chan request
	done   chan struct{}
}

type request struct {
	key   string
	value []byte
	// flushed, when set, marks a flush barrier instead of a write.
	flushed chan struct{}
}

func NewDriver(b Backend) *Driver {
	d := &Driver{
		backend: b,
		writes:  make(chan request, 64),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Driver) run() {
	defer close(d.done)
	for req := range d.writes {
		if req.flushed != nil {
			close(req.flushed)
			continue
		}
		err := d.safely(func() error { return d.backend.Put(req.key, req.value) })
		if err != nil {
			events.Storage.Failure("put", req.key, err)
			continue
		}
		events.Storage.Put(req.key, len(req.value))
	}
}

// Get decodes the value stored under key into out. It reports false when
// the key is absent, the stored value does not decode, or the backend
// failed; out is left untouched in that case.
func (d *Driver) Get(key string, out any) bool {
	if err := d.Flush(context.Background()); err != nil && !errors.Is(err, ErrClosed) {
		events.Storage.Failure("get", key, err)
	}
	var (
		data  []byte
		found bool
	)
	err := d.safely(func() error {
		var err error
		data, found, err = d.backend.Get(key)
		return err
	})
	if err != nil {
		events.Storage.Failure("get", key, err)
		return false
	}
	if !found {
		events.Storage.Get(key, false)
		return false
	}
	if err := decode(data, out); err != nil {
		events.Storage.Failure("decode", key, err)
		return false
	}
	events.Storage.Get(key, true)
	return true
}

// decode unmarshals into a fresh value of out's type and copies it over
// only on success.
func decode(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", out)
	}
	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}

// Load returns the value stored under key, or def when there is none.
func Load[T any](d *Driver, key string, def T) T {
	var v T
	if !d.Get(key, &v) {
		return def
	}
	return v
}

// Put queues value to be stored under key, replacing what was there.
func (d *Driver) Put(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		events.Storage.Failure("encode", key, err)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		events.Storage.Failure("put", key, ErrClosed)
		return
	}
	d.writes <- request{key: key, value: data}
}

// Flush waits until every write queued before the call has been applied.
func (d *Driver) Flush(ctx context.Context) error {
	barrier := make(chan struct{})
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.writes <- request{flushed: barrier}
	d.mu.Unlock()

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains queued writes and closes the backend.
func (d *Driver) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.writes)
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return d.backend.Close()
}

// safely turns a backend panic into an error.
func (d *Driver) safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()
	return fn()
}
