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
	Register(&ListsCmd{})
}

// ListsCmd prints the Google Tasks lists available to import.
type ListsCmd struct {
	// NewSource overrides the Google Tasks source (for testing).
	NewSource SourceFactory
}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists available to import" }
func (c *ListsCmd) Usage() string     { return "todo lists" }
func (c *ListsCmd) NeedsStore() bool  { return false }

func (c *ListsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	newSource := c.NewSource
	if newSource == nil {
		newSource = googleSource
	}
	src, err := newSource(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	lists, err := src.Lists(ctx)
	if err != nil {
		return reportSourceError(errOut, err)
	}
	for _, list := range lists {
		output.FormatListName(out, list)
	}
	return exitcode.Success
}
