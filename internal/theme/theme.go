// Package theme holds the light/dark preference. It is persisted under its
// own key and never touches task state.
package theme

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/kv"
	"todo/internal/telemetry"
)

// Key is the fixed key the theme is stored under.
const Key = "perfect_todo_theme_v1"

// Theme is a UI color mode.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse accepts exactly "light" or "dark".
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// DetectDark reports whether the terminal background is dark.
func DetectDark() bool {
	return lipgloss.HasDarkBackground()
}

// Preference is the persisted theme state machine.
type Preference struct {
	store   kv.Store
	current Theme
}

// Load resolves the initial theme: a valid stored value wins, then the
// prefersDark signal, then Light. A nil prefersDark counts as false, and a
// read error is treated like a missing value.
func Load(ctx context.Context, store kv.Store, prefersDark func() bool) *Preference {
	p := &Preference{store: store, current: Light}
	if v, ok, err := store.Get(ctx, Key); err == nil && ok {
		if t, valid := Parse(v); valid {
			p.current = t
			return p
		}
	}
	if prefersDark != nil && prefersDark() {
		p.current = Dark
	}
	return p
}

// Current returns the active theme.
func (p *Preference) Current() Theme { return p.current }

// Toggle flips the theme and persists it. The in-memory theme flips even if
// the write fails.
func (p *Preference) Toggle(ctx context.Context) (Theme, error) {
	p.current = p.current.Toggle()
	err := p.store.Set(ctx, Key, string(p.current))
	if err != nil {
		err = fmt.Errorf("saving theme: %w", err)
	}
	telemetry.RecordThemeToggle(ctx, string(p.current), err)
	return p.current, err
}
