package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task to the top of the list" }
func (c *AddCmd) Usage() string     { return "todo add [--] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, added, err := svc.Add(ctx, strings.Join(args, " "))
	if !added {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}
	if err != nil {
		return reportSaveError(errOut, err)
	}
	info(out, cfg.Quiet, "added %s", task.ID)
	return exitcode.Success
}
