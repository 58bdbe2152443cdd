// Package kv provides the key-value string store abstraction that task and
// theme state are persisted into. Values are opaque strings; each key holds
// exactly one value and a Set overwrites whatever was there.
package kv

import (
	"context"
	"sync"
)

// Store is the interface for key-value persistence. Implementations must
// report a missing key as ok=false with a nil error, and must make a
// successful Set visible to every later Get on the same backend.
type Store interface {
	// Get returns the value stored under key. ok is false if the key has
	// never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Mem is an in-memory Store. It is exported for use as a test double and for
// the "memory" storage backend. It is safe for concurrent use.
type Mem struct {
	mu     sync.Mutex
	values map[string]string

	// SetErr, when non-nil, is returned by every Set without storing.
	SetErr error
	// GetErr, when non-nil, is returned by every Get.
	GetErr error
}

// NewMem returns an empty Mem.
func NewMem() *Mem {
	return &Mem{values: make(map[string]string)}
}

// NewMemFrom returns a Mem seeded with values.
func NewMemFrom(values map[string]string) *Mem {
	m := NewMem()
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get implements Store.
func (m *Mem) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Mem) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

var _ Store = (*Mem)(nil)
