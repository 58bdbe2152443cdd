package commands_test

import (
	"context"
	"testing"

	"github.com/spf13/pflag"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/testutil"
)

// runFlags parses args into the command's registered flags.
func runFlags(t *testing.T, cmd commands.Command, args ...string) {
	t.Helper()
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
}

func fakeSourceFactory(src *testutil.FakeSource) commands.SourceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Source, error) {
		return src, nil
	}
}

// failingWriter rejects every write.
type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }
