package service

import (
	"context"
	"io"

	"todo/internal/theme"
)

// TaskStore is the task list as seen by commands. Mutations persist the
// full list before returning; a non-nil error is a *SaveError and never
// means the in-memory list was left half-updated.
type TaskStore interface {
	// Tasks returns a copy of all tasks in store order (newest first).
	Tasks() []Task

	// Get returns the first task with the given ID.
	Get(id string) (Task, bool)

	// Filter returns the active filter.
	Filter() Filter

	// SetFilter changes the active filter. It is never persisted.
	SetFilter(f Filter)

	// View returns the filtered tasks and statistics.
	View() View

	// Add trims text and prepends a new task. ok is false when the trimmed
	// text is empty, in which case nothing changes.
	Add(ctx context.Context, text string) (task Task, ok bool, err error)

	// ToggleComplete flips completion on the task. Unknown IDs are a no-op.
	ToggleComplete(ctx context.Context, id string) (changed bool, err error)

	// Edit replaces the task text. Blank text and unknown IDs are a no-op.
	Edit(ctx context.Context, id, text string) (changed bool, err error)

	// Remove deletes the task. Unknown IDs are a no-op.
	Remove(ctx context.Context, id string) (changed bool, err error)

	// ClearCompleted removes every completed task and returns how many went.
	ClearCompleted(ctx context.Context) (removed int, err error)

	// Reload replaces the in-memory list with the persisted one.
	Reload(ctx context.Context)
}

// ThemeStore holds the light/dark preference.
type ThemeStore interface {
	Current() theme.Theme
	Toggle(ctx context.Context) (theme.Theme, error)
}

// Service is everything a command may touch: the task store and the theme
// preference. The two never interact.
type Service interface {
	TaskStore

	// Theme returns the current theme.
	Theme() theme.Theme

	// ToggleTheme flips and persists the theme.
	ToggleTheme(ctx context.Context) (theme.Theme, error)
}

// Source is a read-only remote task provider used by import.
type Source interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// Lists returns all task lists in remote order.
	Lists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns every open task of a list in remote order.
	ListOpenTasks(ctx context.Context, listID string) ([]RemoteTask, error)
}

type composite struct {
	TaskStore
	themes ThemeStore
	closer io.Closer
}

// New combines a task store and a theme preference into a Service. If
// closer is non-nil, Close on the returned Service closes it.
func New(tasks TaskStore, themes ThemeStore, closer io.Closer) Service {
	return &composite{TaskStore: tasks, themes: themes, closer: closer}
}

func (c *composite) Theme() theme.Theme { return c.themes.Current() }

func (c *composite) ToggleTheme(ctx context.Context) (theme.Theme, error) {
	t, err := c.themes.Toggle(ctx)
	if err != nil {
		return t, &SaveError{Op: "theme", Err: err}
	}
	return t, nil
}

// Close releases the underlying storage backend.
func (c *composite) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
