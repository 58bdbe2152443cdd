package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

// watchDebounce coalesces the write and rename events of one save.
const watchDebounce = 100 * time.Millisecond

func init() {
	Register(&WatchCmd{})
}

// WatchCmd re-renders the list whenever another process saves the store
// file. It runs until interrupted.
type WatchCmd struct {
	filter string
}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Re-print the list whenever it changes" }
func (c *WatchCmd) Usage() string     { return "todo watch [--filter <filter>]" }
func (c *WatchCmd) NeedsStore() bool  { return true }

func (c *WatchCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "")
}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.Backend() != config.BackendFile {
		fmt.Fprintf(errOut, "error: watch requires the %s storage backend\n", config.BackendFile)
		return exitcode.UserError
	}
	if err := applyFilter(svc, c.filter); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	render := func() {
		output.FormatView(out, styles(out, svc), svc.View(), false)
	}
	render()

	err := WatchFile(ctx, cfg.StorePath(), watchDebounce, func() {
		cfg.Logger.Debug("store changed, reloading", "path", cfg.StorePath())
		svc.Reload(ctx)
		fmt.Fprintln(out)
		render()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(errOut, "error: watch: %v\n", err)
		return exitcode.StorageError
	}
	return exitcode.Success
}

// WatchFile calls onChange after path is created, written or replaced,
// coalescing events that arrive within debounce. The parent directory is
// watched so atomic rename-over writes are seen. It blocks until ctx is
// done and returns ctx.Err().
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(path)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, open := <-w.Events:
			if !open {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}
		case err, open := <-w.Errors:
			if !open {
				return nil
			}
			return err
		case <-timer.C:
			onChange()
		}
	}
}
