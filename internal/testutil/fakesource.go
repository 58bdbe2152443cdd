package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"todo/internal/backend/googletasks"
	"todo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// ErrNotFound is returned when a list is not found. It is the Google Tasks
// client's sentinel so commands classify fake and real errors alike.
var ErrNotFound = googletasks.ErrNotFound

// ErrAmbiguous is returned when multiple lists match a name.
var ErrAmbiguous = googletasks.ErrAmbiguous

// FakeSource is an in-memory implementation of service.Source for testing.
type FakeSource struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.RemoteTask // listID -> tasks

	// Error injection for testing
	DefaultListErr   error
	ListsErr         error
	ResolveListErr   error
	ListOpenTasksErr error
}

// NewFakeSource creates a new FakeSource with an empty default list.
func NewFakeSource() *FakeSource {
	fs := &FakeSource{tasks: make(map[string][]service.RemoteTask)}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	return fs
}

// AddList adds a list to the fake source.
func (f *FakeSource) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
}

// AddTask adds a task to a list.
func (f *FakeSource) AddTask(listID, taskID, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.RemoteTask{
		ID:        taskID,
		Title:     title,
		Completed: completed,
	})
}

// DefaultList implements service.Source.
func (f *FakeSource) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// Lists implements service.Source.
func (f *FakeSource) Lists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListsErr != nil {
		return nil, f.ListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Source.
func (f *FakeSource) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, ErrAmbiguous
	}
}

// ListOpenTasks implements service.Source.
func (f *FakeSource) ListOpenTasks(ctx context.Context, listID string) ([]service.RemoteTask, error) {
	if f.ListOpenTasksErr != nil {
		return nil, f.ListOpenTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var open []service.RemoteTask
	for _, t := range f.tasks[listID] {
		if !t.Completed {
			open = append(open, t)
		}
	}
	return open, nil
}

var _ service.Source = (*FakeSource)(nil)
