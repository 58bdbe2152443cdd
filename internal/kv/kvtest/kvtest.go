// Package kvtest provides a conformance test suite for kv.Store
// implementations. Each implementation's test file calls RunStoreTests with
// its own factory function.
package kvtest

import (
	"context"
	"strings"
	"testing"

	"todo/internal/kv"
)

// RunStoreTests runs the full conformance suite against a Store
// implementation. newStore must return a fresh, empty store for each call.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissingKey", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(ctx, "missing")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Errorf("ok = true for missing key (value %q)", v)
		}
	})

	t.Run("SetThenGet", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "k", "v"); err != nil {
			t.Fatal(err)
		}
		v, ok, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if !ok || v != "v" {
			t.Errorf("Get = %q, %v, want %q, true", v, ok, "v")
		}
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "k", "first"); err != nil {
			t.Fatal(err)
		}
		if err := s.Set(ctx, "k", "second"); err != nil {
			t.Fatal(err)
		}
		v, _, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if v != "second" {
			t.Errorf("Get = %q, want %q", v, "second")
		}
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "tasks", "[]"); err != nil {
			t.Fatal(err)
		}
		if err := s.Set(ctx, "theme", "dark"); err != nil {
			t.Fatal(err)
		}
		tasks, _, err := s.Get(ctx, "tasks")
		if err != nil {
			t.Fatal(err)
		}
		theme, _, err := s.Get(ctx, "theme")
		if err != nil {
			t.Fatal(err)
		}
		if tasks != "[]" || theme != "dark" {
			t.Errorf("tasks = %q, theme = %q", tasks, theme)
		}
	})

	t.Run("EmptyValueIsPresent", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set(ctx, "k", ""); err != nil {
			t.Fatal(err)
		}
		v, ok, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if !ok || v != "" {
			t.Errorf("Get = %q, %v, want empty, true", v, ok)
		}
	})

	t.Run("ValuesRoundTripVerbatim", func(t *testing.T) {
		s := newStore(t)
		value := `[{"id":"1","text":"naïve \"quoted\"\nline","completed":false,"createdAt":1}]` +
			strings.Repeat("x", 4096)
		if err := s.Set(ctx, "k", value); err != nil {
			t.Fatal(err)
		}
		v, _, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if v != value {
			t.Errorf("value changed in round trip (len %d, want %d)", len(v), len(value))
		}
	})
}
