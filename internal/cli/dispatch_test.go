package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	// Keep config.toml lookups away from the real home directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService(testutil.Task("a1", "Water plants", false))
	stdout, stderr, code := run(t, testFactory(svc))
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "[ ] Water plants") {
		t.Errorf("expected list output, got %q", stdout)
	}
	if !svc.Closed {
		t.Error("expected service closed after the command")
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_CommandHelpFlag(t *testing.T) {
	stdout, _, code := run(t, nil, "add", "--help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Usage: todo add [--] <text...>\n" {
		t.Errorf("unexpected usage output %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: --unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--filter")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: flag needs an argument") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InterspersedFlags(t *testing.T) {
	svc := testutil.NewFakeService()
	stdout, _, code := run(t, testFactory(svc), "add", "buy", "--quiet", "milk")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected quiet add, got %q", stdout)
	}
	if tasks := svc.Tasks(); len(tasks) != 1 || tasks[0].Text != "buy milk" {
		t.Errorf("expected one task 'buy milk', got %+v", tasks)
	}
}

func TestDispatcher_ConfigError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("[storage]\nbackend = \"floppy\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	expected := "error: config error: invalid storage backend: floppy\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_StorageOpenError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("database is locked")
	}
	_, stderr, code := run(t, factory, "list", "--config", t.TempDir())

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: database is locked\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NoStoreCommandSkipsFactory(t *testing.T) {
	called := false
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		called = true
		return nil, errors.New("unreachable")
	}
	_, _, code := run(t, factory, "schema")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if called {
		t.Error("expected factory not to be called for schema")
	}
}

func TestDispatcher_TextStartingWithDash(t *testing.T) {
	svc := testutil.NewFakeService()

	// Without the terminator the text is read as a flag.
	_, stderr, code := run(t, testFactory(svc), "add", "-5 degrees outside")
	if code != exitcode.UserError || !strings.HasPrefix(stderr, "error: unknown shorthand flag") {
		t.Errorf("expected flag error, got code %d stderr %q", code, stderr)
	}

	_, stderr, code = run(t, testFactory(svc), "add", "--", "-5 degrees outside")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "-5 degrees outside" {
		t.Fatalf("expected dashed text kept, got %+v", tasks)
	}

	_, stderr, code = run(t, testFactory(svc), "edit", "1", "--", "-x")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if task, _ := svc.Get(tasks[0].ID); task.Text != "-x" {
		t.Errorf("expected edited text '-x', got %q", task.Text)
	}
}
