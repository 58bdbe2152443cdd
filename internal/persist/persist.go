// Package persist converts the task list to and from its stored JSON form
// and reads/writes it through a kv.Store.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"todo/internal/kv"
	"todo/internal/service"
	"todo/internal/telemetry"
)

// Key is the fixed key the task list is stored under.
const Key = "perfect_todo_items_v1"

// Adapter loads and saves the task list.
type Adapter struct {
	store  kv.Store
	logger *slog.Logger
}

// New returns an Adapter over store. A nil logger discards diagnostics.
func New(store kv.Store, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{store: store, logger: logger}
}

// Load returns the persisted tasks. It never fails: a missing key, a read
// error, unparseable data or a non-array value all yield an empty list, and
// malformed records are dropped.
func (a *Adapter) Load(ctx context.Context) []service.Task {
	raw, ok, err := a.store.Get(ctx, Key)
	if err != nil {
		a.logger.Debug("task list unreadable, starting empty", "err", err)
		telemetry.RecordLoad(ctx, 0, 0, err)
		return []service.Task{}
	}
	if !ok {
		raw = "[]"
	}
	tasks, dropped := Decode(raw)
	if dropped > 0 {
		a.logger.Debug("dropped malformed task records", "dropped", dropped, "kept", len(tasks))
	}
	telemetry.RecordLoad(ctx, len(tasks), dropped, nil)
	return tasks
}

// Save writes the full list under Key, replacing the previous value.
func (a *Adapter) Save(ctx context.Context, tasks []service.Task) error {
	start := time.Now()
	data, err := Encode(tasks)
	if err == nil {
		err = a.store.Set(ctx, Key, data)
	}
	if err != nil {
		err = fmt.Errorf("saving tasks: %w", err)
		a.logger.Debug("save failed", "err", err)
	}
	telemetry.RecordSave(ctx, len(tasks), time.Since(start), err)
	return err
}

// Encode serializes tasks as a compact JSON array without HTML escaping.
// A nil slice encodes as [].
func Encode(tasks []service.Task) (string, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tasks); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode parses a stored task list. If raw is not a JSON array the result is
// empty. Elements that are not Task-shaped (object with string id, string
// text, boolean completed, numeric createdAt) are skipped and counted in
// dropped; the rest keep their order. The result is never nil.
func Decode(raw string) (tasks []service.Task, dropped int) {
	tasks = []service.Task{}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return tasks, 0
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		// Trailing data after the first value is not valid JSON.
		return tasks, 0
	}
	items, ok := parsed.([]any)
	if !ok {
		return tasks, 0
	}

	for _, item := range items {
		t, ok := taskFromValue(item)
		if !ok {
			dropped++
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, dropped
}

// taskFromValue is the structural check applied to each stored record.
func taskFromValue(v any) (service.Task, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return service.Task{}, false
	}
	id, ok := obj["id"].(string)
	if !ok {
		return service.Task{}, false
	}
	text, ok := obj["text"].(string)
	if !ok {
		return service.Task{}, false
	}
	completed, ok := obj["completed"].(bool)
	if !ok {
		return service.Task{}, false
	}
	num, ok := obj["createdAt"].(json.Number)
	if !ok {
		return service.Task{}, false
	}
	createdAt, ok := millis(num)
	if !ok {
		return service.Task{}, false
	}
	return service.Task{ID: id, Text: text, Completed: completed, CreatedAt: createdAt}, true
}

// millis converts a JSON number to epoch milliseconds. Fractional values are
// truncated toward zero and values outside int64 are clamped to its range.
func millis(n json.Number) (int64, bool) {
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	switch f = math.Trunc(f); {
	case math.IsNaN(f):
		return 0, false
	case f <= math.MinInt64:
		return math.MinInt64, true
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	}
	return int64(f), true
}
