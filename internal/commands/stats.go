package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print task counts and completion rate" }
func (c *StatsCmd) Usage() string     { return "todo stats" }
func (c *StatsCmd) NeedsStore() bool  { return true }

func (c *StatsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	st := svc.View().Stats
	fmt.Fprintf(out, "total      %d\n", st.Total)
	fmt.Fprintf(out, "active     %d\n", st.Active)
	fmt.Fprintf(out, "completed  %d\n", st.Completed)
	fmt.Fprintln(out, output.Summary(st))
	return exitcode.Success
}
