package commands

import (
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// resolveArgs parses the reference in args, applies the --filter value the
// reference is numbered against, and resolves it. On failure it prints the
// error and returns a non-zero exit code.
func resolveArgs(svc service.TaskStore, filter string, args []string, errOut io.Writer) (service.Task, []string, int) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError
	}
	if err := applyFilter(svc, filter); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError
	}
	task, err := ResolveTask(svc, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError
	}
	return task, rest, exitcode.Success
}
