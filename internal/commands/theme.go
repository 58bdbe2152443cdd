package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or toggle the light/dark theme" }
func (c *ThemeCmd) Usage() string     { return "todo theme [toggle|light|dark]" }
func (c *ThemeCmd) NeedsStore() bool  { return true }

func (c *ThemeCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(out, svc.Theme())
		return exitcode.Success
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	switch args[0] {
	case "toggle":
	default:
		want, valid := theme.Parse(args[0])
		if !valid {
			fmt.Fprintf(errOut, "error: invalid theme: %s (want toggle, light or dark)\n", args[0])
			return exitcode.UserError
		}
		if want == svc.Theme() {
			info(out, cfg.Quiet, "%s", want)
			return exitcode.Success
		}
	}

	t, err := svc.ToggleTheme(ctx)
	if err != nil {
		return reportSaveError(errOut, err)
	}
	info(out, cfg.Quiet, "%s", t)
	return exitcode.Success
}
