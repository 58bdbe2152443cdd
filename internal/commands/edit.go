package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Empty text is the cancel path: the
// task keeps its text and nothing is saved.
type EditCmd struct {
	filter string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace a task's text" }
func (c *EditCmd) Usage() string     { return "todo edit [--filter <filter>] <ref> [--] <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, rest, code := resolveArgs(svc, c.filter, args, errOut)
	if code != exitcode.Success {
		return code
	}

	changed, err := svc.Edit(ctx, task.ID, strings.Join(rest, " "))
	if err != nil {
		return reportSaveError(errOut, err)
	}
	if changed {
		info(out, cfg.Quiet, "ok")
	}
	return exitcode.Success
}
