package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/export"
	"todo/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	path   string
	filter string
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as JSON, CSV or PDF" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format json|csv|pdf] [--output <file>] [--filter <filter>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
	fs.StringVarP(&c.path, "output", "o", "", "")
	fs.StringVarP(&c.filter, "filter", "f", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if err := applyFilter(svc, c.filter); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	format := c.format
	if format == "" {
		format = "json"
	}
	if strings.EqualFold(format, "pdf") && c.path == "" {
		fmt.Fprintln(errOut, "error: pdf export requires --output")
		return exitcode.UserError
	}

	data, err := export.Export(svc.View(), format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if c.path == "" {
		if _, err := out.Write(data); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StorageError
		}
		return exitcode.Success
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	info(out, cfg.Quiet, "wrote %s", c.path)
	return exitcode.Success
}
