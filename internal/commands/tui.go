package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd starts the interactive UI.
type TUICmd struct {
	// Input overrides stdin (for testing).
	Input io.Reader
}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return []string{"ui"} }
func (c *TUICmd) Synopsis() string  { return "Interactive task list" }
func (c *TUICmd) Usage() string     { return "todo tui" }
func (c *TUICmd) NeedsStore() bool  { return true }

func (c *TUICmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.Input
	if in == nil {
		in = os.Stdin
	}
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}
	if f, isFile := out.(*os.File); isFile && f == os.Stdout {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(tui.New(ctx, svc, out), opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
