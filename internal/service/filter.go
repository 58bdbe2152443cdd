package service

import (
	"fmt"
	"strings"
)

// Filter selects which tasks a view shows.
type Filter int

const (
	// FilterAll shows every task.
	FilterAll Filter = iota
	// FilterActive shows tasks that are not completed.
	FilterActive
	// FilterCompleted shows completed tasks.
	FilterCompleted
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// ParseFilter parses a filter name (case-insensitive, trimmed).
// An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("invalid filter: %s (want all, active or completed)", s)
}

// FilterTasks returns the tasks selected by f, preserving order.
// FilterAll returns tasks unchanged.
func FilterTasks(tasks []Task, f Filter) []Task {
	if f == FilterAll {
		return tasks
	}
	want := f == FilterCompleted
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == want {
			result = append(result, t)
		}
	}
	return result
}

// ActiveCount returns the number of tasks not yet completed.
func ActiveCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletionRate returns the percentage of completed tasks rounded half up
// to the nearest integer. An empty list is 0% complete.
func CompletionRate(tasks []Task) int {
	total := len(tasks)
	if total == 0 {
		return 0
	}
	done := total - ActiveCount(tasks)
	// round(100*done/total) with halves rounded up, in integer arithmetic.
	return (200*done + total) / (2 * total)
}

// ComputeStats derives the summary statistics for tasks.
func ComputeStats(tasks []Task) Stats {
	active := ActiveCount(tasks)
	return Stats{
		Total:          len(tasks),
		Active:         active,
		Completed:      len(tasks) - active,
		CompletionRate: CompletionRate(tasks),
	}
}

// NewView builds the view of tasks under filter f.
func NewView(tasks []Task, f Filter) View {
	return View{
		Filter: f,
		Tasks:  FilterTasks(tasks, f),
		Stats:  ComputeStats(tasks),
	}
}
