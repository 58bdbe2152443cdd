package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles, so running it on a
// completed task reopens it.
type DoneCmd struct {
	filter string
}

// SetFilter sets the filter the reference is numbered against (for testing).
func (c *DoneCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todo done [--filter <filter>] <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, rest, code := resolveArgs(svc, c.filter, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	if _, err := svc.ToggleComplete(ctx, task.ID); err != nil {
		return reportSaveError(errOut, err)
	}

	if task.Completed {
		info(out, cfg.Quiet, "reopened: %s", task.Text)
	} else {
		info(out, cfg.Quiet, "completed: %s", task.Text)
	}
	return exitcode.Success
}
