// Package service defines the task list types, the derived view over them,
// and the interfaces commands use to drive the task store.
package service

// Task is a single to-do record. The JSON field names are the persisted
// wire format and must not change.
type Task struct {
	ID        string `json:"id" jsonschema:"description=Opaque unique identifier assigned at creation"`
	Text      string `json:"text" jsonschema:"description=Trimmed task text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt" jsonschema:"description=Creation time in epoch milliseconds"`
}

// Stats summarizes a task list.
type Stats struct {
	Total          int
	Active         int
	Completed      int
	CompletionRate int // percent, 0-100
}

// View is the filtered task sequence plus statistics over the whole list.
type View struct {
	Filter Filter
	Tasks  []Task // filtered, store order
	Stats  Stats  // computed over all tasks, not the filtered subset
}

// TaskList is a remote task list (import source).
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// RemoteTask is a task fetched from an import source.
type RemoteTask struct {
	ID        string
	Title     string
	Completed bool
}
