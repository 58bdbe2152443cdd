package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todo/internal/service"
)

// MinIDPrefix is the shortest id prefix accepted as a task reference.
const MinIDPrefix = 4

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrNotFound indicates a reference matched no task.
	ErrNotFound = errors.New("task not found")

	// ErrAmbiguous indicates an id prefix matched more than one task.
	ErrAmbiguous = errors.New("ambiguous task reference")
)

// ParseTaskRef returns the task reference from args and the remaining
// arguments.
func ParseTaskRef(args []string) (ref string, rest []string, err error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", nil, ErrTaskRefRequired
	}
	return strings.TrimSpace(args[0]), args[1:], nil
}

// ResolveTask finds the task a reference points at.
//
// Resolution rules:
// 1. All digits: 1-based position in the current filtered view (as printed
// by list with the same --filter).
// 2. Exact task id.
// 3. Unique id prefix of at least MinIDPrefix characters.
func ResolveTask(svc service.TaskStore, ref string) (service.Task, error) {
	if isAllDigits(ref) {
		n, err := strconv.Atoi(ref)
		visible := svc.View().Tasks
		if err != nil || n < 1 || n > len(visible) {
			return service.Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return visible[n-1], nil
	}

	if t, ok := svc.Get(ref); ok {
		return t, nil
	}

	if len(ref) >= MinIDPrefix {
		var match service.Task
		ids := map[string]bool{}
		for _, t := range svc.Tasks() {
			if strings.HasPrefix(t.ID, ref) && !ids[t.ID] {
				ids[t.ID] = true
				match = t
			}
		}
		switch len(ids) {
		case 0:
		case 1:
			return match, nil
		default:
			return service.Task{}, fmt.Errorf("%w: %s", ErrAmbiguous, ref)
		}
	}
	return service.Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
