package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/telemetry"
)

// SourceFactory opens the remote task source used by import and lists.
type SourceFactory func(ctx context.Context, cfg *config.Config) (service.Source, error)

func init() {
	Register(&ImportCmd{})
}

// googleSource opens the Google Tasks client after checking for credentials.
func googleSource(ctx context.Context, cfg *config.Config) (service.Source, error) {
	if !cfg.HasOAuthClient() {
		return nil, fmt.Errorf("%s not found in %s", config.OAuthClientFile, cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, errors.New("not logged in (run: todo login)")
	}
	return googletasks.New(ctx, cfg)
}

// ImportCmd copies the open tasks of a Google Tasks list into the local list.
// It is a one-shot copy: nothing is written back and re-running it imports
// the same tasks again.
type ImportCmd struct {
	listName string

	// NewSource overrides the Google Tasks source (for testing).
	NewSource SourceFactory
}

// SetListName sets the list name (for testing).
func (c *ImportCmd) SetListName(name string) {
	c.listName = name
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Import open tasks from Google Tasks" }
func (c *ImportCmd) Usage() string     { return "todo import [--list <list-name>]" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.listName, "list", "l", "", "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	newSource := c.NewSource
	if newSource == nil {
		newSource = googleSource
	}
	src, err := newSource(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	list, code := resolveSourceList(ctx, src, c.listName, errOut)
	if code != exitcode.Success {
		return code
	}

	remote, err := src.ListOpenTasks(ctx, list.ID)
	if err != nil {
		telemetry.RecordImport(ctx, "googletasks", 0, err)
		return reportSourceError(errOut, err)
	}

	// Add prepends, so walk backwards to keep the remote order on top.
	imported := 0
	for i := len(remote) - 1; i >= 0; i-- {
		_, added, err := svc.Add(ctx, remote[i].Title)
		if err != nil {
			telemetry.RecordImport(ctx, "googletasks", imported, err)
			return reportSaveError(errOut, err)
		}
		if added {
			imported++
		}
	}
	telemetry.RecordImport(ctx, "googletasks", imported, nil)

	info(out, cfg.Quiet, "imported %d from %s", imported, list.Title)
	return exitcode.Success
}

// resolveSourceList picks the named list, or the default list when name is
// empty.
func resolveSourceList(ctx context.Context, src service.Source, name string, errOut io.Writer) (service.TaskList, int) {
	if name == "" {
		list, err := src.DefaultList(ctx)
		if err != nil {
			return service.TaskList{}, reportSourceError(errOut, err)
		}
		return list, exitcode.Success
	}

	list, err := src.ResolveList(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, googletasks.ErrNotFound):
			fmt.Fprintf(errOut, "error: list not found: %s\n", name)
			return service.TaskList{}, exitcode.UserError
		case errors.Is(err, googletasks.ErrAmbiguous):
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
			return service.TaskList{}, exitcode.UserError
		}
		return service.TaskList{}, reportSourceError(errOut, err)
	}
	return list, exitcode.Success
}

func reportSourceError(errOut io.Writer, err error) int {
	if errors.Is(err, googletasks.ErrAuth) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.ConfigError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.StorageError
}
