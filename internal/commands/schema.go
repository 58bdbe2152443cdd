package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/persist"
	"todo/internal/service"
)

func init() {
	Register(&SchemaCmd{})
}

// SchemaCmd prints the JSON Schema of the persisted task list.
type SchemaCmd struct{}

func (c *SchemaCmd) Name() string      { return "schema" }
func (c *SchemaCmd) Aliases() []string { return nil }
func (c *SchemaCmd) Synopsis() string  { return "Print the JSON Schema of the stored task list" }
func (c *SchemaCmd) Usage() string     { return "todo schema" }
func (c *SchemaCmd) NeedsStore() bool  { return false }

func (c *SchemaCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *SchemaCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	data, err := json.MarshalIndent(persist.Schema(), "", "  ")
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(out, "%s\n", data)
	return exitcode.Success
}
