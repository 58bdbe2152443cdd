// Package tui is the interactive terminal UI. Every key maps to one task
// store call; after each call the whole screen is rebuilt from the store's
// view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/output"
	"todo/internal/service"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeAdd
	modeEdit
)

// Model is the bubbletea model for `todo tui`.
type Model struct {
	ctx context.Context
	svc service.Service
	w   io.Writer

	styles output.Styles

	mode   uiMode
	cursor int
	input  string
	editID string

	status    string
	statusErr bool

	width  int
	height int
}

// New returns a Model driving svc. Styles are rendered for w.
func New(ctx context.Context, svc service.Service, w io.Writer) *Model {
	m := &Model{ctx: ctx, svc: svc, w: w}
	m.restyle()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.mode != modeNormal {
			m.updateInputMode(msg)
			return m, nil
		}
		if quit := m.updateNormalMode(msg); quit {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeySpace {
		m.toggleSelected()
		return false
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "x", "enter":
		m.toggleSelected()
	case "a":
		m.mode = modeAdd
		m.input = ""
		m.setStatus("New task: type and press enter (esc cancels)", false)
	case "e":
		m.startEdit()
	case "d":
		m.deleteSelected()
	case "c":
		m.clearCompleted()
	case "f":
		m.setFilter(m.svc.Filter().Next())
	case "1":
		m.setFilter(service.FilterAll)
	case "2":
		m.setFilter(service.FilterActive)
	case "3":
		m.setFilter(service.FilterCompleted)
	case "t":
		m.toggleTheme()
	}
	m.clampCursor()
	return false
}

func (m *Model) updateInputMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeNormal
		m.input = ""
		m.setStatus("Cancelled", false)
		return
	case "enter":
		m.applyInput()
		return
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.input = trimLastRune(m.input)
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

func (m *Model) applyInput() {
	text := m.input
	mode := m.mode
	m.mode = modeNormal
	m.input = ""

	switch mode {
	case modeAdd:
		task, added, err := m.svc.Add(m.ctx, text)
		if !added {
			// Blank input: stay in add mode so the user can type again.
			m.mode = modeAdd
			m.setStatus("Task text required", true)
			return
		}
		m.cursor = m.indexOf(task.ID)
		m.report(err, "Added")
	case modeEdit:
		changed, err := m.svc.Edit(m.ctx, m.editID, text)
		m.editID = ""
		if !changed && err == nil {
			m.setStatus("Edit cancelled", false)
			return
		}
		m.report(err, "Updated")
	}
	m.clampCursor()
}

func (m *Model) startEdit() {
	task, ok := m.selected()
	if !ok {
		return
	}
	m.mode = modeEdit
	m.editID = task.ID
	m.input = task.Text
	m.setStatus("Edit task: enter saves, empty text or esc cancels", false)
}

func (m *Model) toggleSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	_, err := m.svc.ToggleComplete(m.ctx, task.ID)
	if task.Completed {
		m.report(err, "Reopened")
	} else {
		m.report(err, "Completed")
	}
}

func (m *Model) deleteSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	_, err := m.svc.Remove(m.ctx, task.ID)
	m.report(err, "Deleted")
}

func (m *Model) clearCompleted() {
	n, err := m.svc.ClearCompleted(m.ctx)
	m.report(err, fmt.Sprintf("Cleared %d completed", n))
}

func (m *Model) setFilter(f service.Filter) {
	m.svc.SetFilter(f)
	m.cursor = 0
	m.setStatus("Showing "+f.String(), false)
}

func (m *Model) toggleTheme() {
	t, err := m.svc.ToggleTheme(m.ctx)
	m.restyle()
	m.report(err, "Theme: "+t.String())
}

func (m *Model) restyle() {
	m.styles = output.NewStyles(m.w, m.svc.Theme())
}

// report shows a failed save on the status line. The change itself has
// already been applied.
func (m *Model) report(err error, done string) {
	if err == nil {
		m.setStatus(done, false)
		return
	}
	var se *service.SaveError
	if errors.As(err, &se) {
		err = se.Err
	}
	m.setStatus("Storage error: "+err.Error(), true)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) selected() (service.Task, bool) {
	tasks := m.svc.View().Tasks
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return service.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) indexOf(id string) int {
	for i, t := range m.svc.View().Tasks {
		if t.ID == id {
			return i
		}
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.svc.View().Tasks)
	m.cursor = clamp(m.cursor, 0, max(n-1, 0))
}

func (m *Model) View() string {
	v := m.svc.View()
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("todo"))
	b.WriteString("  ")
	b.WriteString(m.filterTabs(v.Filter))
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(inputBox(st, "New task", m.input))
		b.WriteString("\n")
	}

	if len(v.Tasks) == 0 {
		b.WriteString(st.Empty.Render(output.EmptyMessage(v)))
		b.WriteString("\n")
	}
	for i, t := range v.Tasks {
		box := "[ ]"
		text := st.Active.Render(t.Text)
		if t.Completed {
			box = "[x]"
			text = st.Done.Render(t.Text)
		}
		if m.mode == modeEdit && t.ID == m.editID {
			text = inputBox(st, "Edit", m.input)
		}
		line := fmt.Sprintf(" %s %s", box, text)
		if i == m.cursor {
			line = st.Cursor.Render(">" + line)
		} else {
			line = " " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString("      ")
			b.WriteString(st.Meta.Render("Created " + output.FormatCreated(t.CreatedAt)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(st.Summary.Render(output.Summary(v.Stats)))
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(st.Error.Render(m.status))
		} else {
			b.WriteString(st.Meta.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(st.Meta.Render(helpLine))
	b.WriteString("\n")
	return b.String()
}

const helpLine = "j/k move · space toggle · a add · e edit · d delete · c clear done · f filter · t theme · q quit"

func (m *Model) filterTabs(active service.Filter) string {
	tabs := make([]string, 0, len(service.Filters))
	for _, f := range service.Filters {
		label := f.String()
		if f == active {
			label = m.styles.Title.Render("[" + label + "]")
		} else {
			label = m.styles.Meta.Render(" " + label + " ")
		}
		tabs = append(tabs, label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func inputBox(st output.Styles, label, input string) string {
	return st.Title.Render(label+": ") + input + "_"
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
