// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"todo/internal/backend"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/persist"
	"todo/internal/service"
	"todo/internal/tasklist"
	"todo/internal/theme"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	// Cancel on interrupt so watch and tui shut down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, openService)
	return dispatcher.Run(ctx, args, stdout, stderr)
}

// openService opens the configured storage backend and loads the task list
// and theme preference from it.
func openService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tasks := tasklist.New(ctx, persist.New(store, cfg.Logger), tasklist.WithLogger(cfg.Logger))

	prefersDark := theme.DetectDark
	if v, ok := cfg.PrefersDarkOverride(); ok {
		prefersDark = func() bool { return v }
	}
	pref := theme.Load(ctx, store, prefersDark)
	cfg.Logger.Debug("service ready", "backend", cfg.Backend(), "tasks", len(tasks.Tasks()), "theme", pref.Current())

	return service.New(tasks, pref, store), nil
}
