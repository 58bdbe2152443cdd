// Package tasklist is the task store: the ordered task list and the active
// filter. Every mutation is applied in memory first and then the whole list
// is saved; a failed save is reported but never undoes or half-applies the
// mutation.
package tasklist

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo/internal/service"
	"todo/internal/telemetry"
)

// Persister loads and saves the full task list.
type Persister interface {
	Load(ctx context.Context) []service.Task
	Save(ctx context.Context, tasks []service.Task) error
}

// Store is the task store. It is not safe for concurrent use; callers run
// one operation to completion before starting the next.
type Store struct {
	persister Persister
	tasks     []service.Task
	filter    service.Filter

	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides task ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store and loads the persisted list. The filter starts at All.
func New(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		filter:    service.FilterAll,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = p.Load(ctx)
	return s
}

// Tasks returns a copy of all tasks in store order.
func (s *Store) Tasks() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the first task with id.
func (s *Store) Get(id string) (service.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return service.Task{}, false
}

// Filter returns the active filter.
func (s *Store) Filter() service.Filter { return s.filter }

// SetFilter changes the active filter. Tasks are not touched and nothing is
// saved.
func (s *Store) SetFilter(f service.Filter) { s.filter = f }

// View returns the filtered tasks and statistics over the whole list.
func (s *Store) View() service.View {
	return service.NewView(s.Tasks(), s.filter)
}

// Add trims text and prepends a new active task. Blank text is a no-op with
// ok=false.
func (s *Store) Add(ctx context.Context, text string) (service.Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		telemetry.RecordMutation(ctx, "add", false, nil)
		return service.Task{}, false, nil
	}
	t := service.Task{
		ID:        s.uniqueID(),
		Text:      text,
		Completed: false,
		CreatedAt: s.now().UnixMilli(),
	}
	s.tasks = append([]service.Task{t}, s.tasks...)
	err := s.save(ctx, "add")
	return t, true, err
}

// ToggleComplete flips completion on the first task with id. Unknown ids are
// a no-op.
func (s *Store) ToggleComplete(ctx context.Context, id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		telemetry.RecordMutation(ctx, "toggle", false, nil)
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true, s.save(ctx, "toggle")
}

// Edit replaces the text of the first task with id. Blank text cancels the
// edit and unknown ids are ignored; neither saves.
func (s *Store) Edit(ctx context.Context, id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	i := s.index(id)
	if text == "" || i < 0 {
		telemetry.RecordMutation(ctx, "edit", false, nil)
		return false, nil
	}
	s.tasks[i].Text = text
	return true, s.save(ctx, "edit")
}

// Remove deletes every task with id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.tasks) {
		telemetry.RecordMutation(ctx, "remove", false, nil)
		return false, nil
	}
	s.tasks = kept
	return true, s.save(ctx, "remove")
}

// ClearCompleted removes all completed tasks and returns how many were
// removed. The list is saved even when nothing was completed.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	kept := make([]service.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	return removed, s.save(ctx, "clear_completed")
}

// Reload replaces the in-memory list with the persisted one. The filter is
// kept.
func (s *Store) Reload(ctx context.Context) {
	s.tasks = s.persister.Load(ctx)
}

func (s *Store) save(ctx context.Context, op string) error {
	err := s.persister.Save(ctx, s.Tasks())
	if err != nil {
		s.logger.Debug("task list not saved; in-memory state kept", "op", op, "err", err)
	}
	telemetry.RecordMutation(ctx, op, true, err)
	if err != nil {
		return &service.SaveError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID returns a generated id not already present in the store.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}

var _ service.TaskStore = (*Store)(nil)
