package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

// reportSaveError prints a failed save and returns the storage exit code.
// The mutation itself has already been applied in memory.
func reportSaveError(errOut io.Writer, err error) int {
	var se *service.SaveError
	if errors.As(err, &se) {
		err = se.Err
	}
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}

// info prints an informational line unless quiet.
func info(out io.Writer, quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}

// styles returns output styles for the current theme, rendered for out.
func styles(out io.Writer, svc service.Service) output.Styles {
	return output.NewStyles(out, svc.Theme())
}

// applyFilter parses and activates a --filter value. An empty value leaves
// the store's filter alone.
func applyFilter(svc service.TaskStore, value string) error {
	if value == "" {
		return nil
	}
	f, err := service.ParseFilter(value)
	if err != nil {
		return err
	}
	svc.SetFilter(f)
	return nil
}
