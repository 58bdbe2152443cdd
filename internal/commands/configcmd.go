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
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective settings as TOML.
type ConfigCmd struct {
	path bool
}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Print the effective configuration" }
func (c *ConfigCmd) Usage() string     { return "todo config [--path]" }
func (c *ConfigCmd) NeedsStore() bool  { return false }

func (c *ConfigCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.path, "path", false, "")
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.path {
		fmt.Fprintln(out, cfg.ConfigPath())
		return exitcode.Success
	}

	// Show resolved values, not just what the file set.
	s := cfg.Settings
	s.Storage.Backend = cfg.Backend()
	if s.Storage.Backend == config.BackendFile {
		s.Storage.Path = cfg.StorePath()
	}
	if s.Storage.DSN != "" || cfg.DSN() != "" {
		s.Storage.DSN = "(set)"
	}

	text, err := s.Marshal()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	fmt.Fprint(out, text)
	return exitcode.Success
}
