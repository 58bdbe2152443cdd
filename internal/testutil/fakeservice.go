// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"time"

	"todo/internal/kv"
	"todo/internal/persist"
	"todo/internal/service"
	"todo/internal/tasklist"
	"todo/internal/theme"
)

// FakeClock is the fixed creation time given to tasks added through a
// FakeService (2023-11-14T22:13:20Z).
const FakeClock int64 = 1700000000000

// FakeService is a service.Service over a real task store backed by an
// in-memory kv.Mem. IDs are deterministic: t1, t2, ...
type FakeService struct {
	*tasklist.Store

	// Mem is the backing store. Set Mem.SetErr to make every save fail.
	Mem *kv.Mem

	theme *theme.Preference

	// Closed is set by Close.
	Closed bool
}

// NewFakeService creates a FakeService seeded with tasks in the given order
// and the Light theme.
func NewFakeService(tasks ...service.Task) *FakeService {
	mem := kv.NewMem()
	if len(tasks) > 0 {
		raw, err := persist.Encode(tasks)
		if err != nil {
			panic(err)
		}
		mem = kv.NewMemFrom(map[string]string{persist.Key: raw})
	}
	n := 0
	ctx := context.Background()
	store := tasklist.New(ctx, persist.New(mem, nil),
		tasklist.WithClock(func() time.Time { return time.UnixMilli(FakeClock) }),
		tasklist.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("t%d", n)
		}),
	)
	return &FakeService{
		Store: store,
		Mem:   mem,
		theme: theme.Load(ctx, mem, nil),
	}
}

// Task returns a Task with the given id and text for seeding.
func Task(id, text string, completed bool) service.Task {
	return service.Task{ID: id, Text: text, Completed: completed, CreatedAt: FakeClock}
}

// Theme implements service.Service.
func (f *FakeService) Theme() theme.Theme { return f.theme.Current() }

// ToggleTheme implements service.Service.
func (f *FakeService) ToggleTheme(ctx context.Context) (theme.Theme, error) {
	t, err := f.theme.Toggle(ctx)
	if err != nil {
		return t, &service.SaveError{Op: "theme", Err: err}
	}
	return t, nil
}

// Close implements io.Closer.
func (f *FakeService) Close() error {
	f.Closed = true
	return nil
}

// Stored returns the task list currently persisted in Mem.
func (f *FakeService) Stored() []service.Task {
	raw, ok, _ := f.Mem.Get(context.Background(), persist.Key)
	if !ok {
		return nil
	}
	tasks, _ := persist.Decode(raw)
	return tasks
}

var _ service.Service = (*FakeService)(nil)
