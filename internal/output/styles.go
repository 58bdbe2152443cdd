package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/theme"
)

// Styles are the lipgloss styles used for task output.
type Styles struct {
	Title   lipgloss.Style
	Active  lipgloss.Style
	Done    lipgloss.Style
	Meta    lipgloss.Style
	Summary lipgloss.Style
	Empty   lipgloss.Style
	Error   lipgloss.Style
	Cursor  lipgloss.Style
}

type palette struct {
	accent, text, muted, done, err, cursorBg lipgloss.Color
}

var palettes = map[theme.Theme]palette{
	theme.Light: {
		accent:   "#1D4ED8",
		text:     "#111827",
		muted:    "#6B7280",
		done:     "#15803D",
		err:      "#B91C1C",
		cursorBg: "#E5E7EB",
	},
	theme.Dark: {
		accent:   "#89B4FA",
		text:     "#CDD6F4",
		muted:    "#6C7086",
		done:     "#A6E3A1",
		err:      "#F38BA8",
		cursorBg: "#313244",
	},
}

// NewStyles returns the styles for t rendered for w. Color is only emitted
// when w is a terminal that supports it, so output to pipes and buffers
// stays plain.
func NewStyles(w io.Writer, t theme.Theme) Styles {
	r := lipgloss.NewRenderer(w)
	p, ok := palettes[t]
	if !ok {
		p = palettes[theme.Light]
	}
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(p.accent),
		Active:  r.NewStyle().Foreground(p.text),
		Done:    r.NewStyle().Foreground(p.done).Strikethrough(true),
		Meta:    r.NewStyle().Foreground(p.muted),
		Summary: r.NewStyle().Foreground(p.muted),
		Empty:   r.NewStyle().Italic(true).Foreground(p.muted),
		Error:   r.NewStyle().Bold(true).Foreground(p.err),
		Cursor:  r.NewStyle().Background(p.cursorBg),
	}
}

// Plain returns styles that render text unchanged.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Active: s, Done: s, Meta: s, Summary: s, Empty: s, Error: s, Cursor: s}
}
