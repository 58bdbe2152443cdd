package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/service"
	"todo/internal/testutil"
	"todo/internal/theme"
)

func newModel(tasks ...service.Task) (*Model, *testutil.FakeService) {
	svc := testutil.NewFakeService(tasks...)
	return New(context.Background(), svc, &bytes.Buffer{}), svc
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			press(m, " ")
			continue
		}
		press(m, string(r))
	}
}

func TestAddTask(t *testing.T) {
	m, svc := newModel()

	press(m, "a")
	typeText(m, "Buy milk")
	press(m, "enter")

	tasks := svc.Stored()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("expected persisted task, got %+v", tasks)
	}
	if m.mode != modeNormal {
		t.Errorf("expected normal mode after add, got %v", m.mode)
	}
	if !strings.Contains(m.View(), "[ ] Buy milk") {
		t.Errorf("expected task in view, got:\n%s", m.View())
	}
}

func TestAddBlankStaysInInput(t *testing.T) {
	m, svc := newModel()

	press(m, "a", " ", " ", "enter")

	if len(svc.Tasks()) != 0 {
		t.Errorf("expected no task, got %+v", svc.Tasks())
	}
	if m.mode != modeAdd || !m.statusErr {
		t.Errorf("expected to stay in add mode with an error, got mode=%v status=%q", m.mode, m.status)
	}
}

func TestAddEscCancels(t *testing.T) {
	m, svc := newModel()
	press(m, "a", "x", "esc")
	if len(svc.Tasks()) != 0 || m.mode != modeNormal {
		t.Errorf("expected cancel, got tasks=%+v mode=%v", svc.Tasks(), m.mode)
	}
}

func TestToggleAndMove(t *testing.T) {
	m, svc := newModel(
		testutil.Task("a", "first", false),
		testutil.Task("b", "second", false),
	)

	press(m, "j", " ")
	if task, _ := svc.Get("b"); !task.Completed {
		t.Error("expected second task completed")
	}
	if task, _ := svc.Get("a"); task.Completed {
		t.Error("expected first task untouched")
	}

	press(m, "j", "j")
	if m.cursor != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", m.cursor)
	}
}

func TestEditTask(t *testing.T) {
	m, svc := newModel(testutil.Task("a", "old", false))

	press(m, "e")
	if m.input != "old" {
		t.Fatalf("expected input prefilled, got %q", m.input)
	}
	press(m, "backspace", "backspace", "backspace")
	typeText(m, "new")
	press(m, "enter")

	if task, _ := svc.Get("a"); task.Text != "new" {
		t.Errorf("expected edited text, got %q", task.Text)
	}
}

func TestEditEmptyCancels(t *testing.T) {
	m, svc := newModel(testutil.Task("a", "keep", false))

	press(m, "e", "backspace", "backspace", "backspace", "backspace", "enter")

	if task, _ := svc.Get("a"); task.Text != "keep" {
		t.Errorf("expected text kept, got %q", task.Text)
	}
	if m.status != "Edit cancelled" {
		t.Errorf("expected cancel status, got %q", m.status)
	}
}

func TestDeleteAndClear(t *testing.T) {
	m, svc := newModel(
		testutil.Task("a", "a", true),
		testutil.Task("b", "b", false),
		testutil.Task("c", "c", true),
	)

	press(m, "j", "d")
	if _, ok := svc.Get("b"); ok {
		t.Error("expected b deleted")
	}

	press(m, "c")
	if got := svc.Tasks(); len(got) != 0 {
		t.Errorf("expected completed tasks cleared, got %+v", got)
	}
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Errorf("expected empty message, got:\n%s", m.View())
	}
}

func TestFilterCycle(t *testing.T) {
	m, svc := newModel(
		testutil.Task("a", "open", false),
		testutil.Task("b", "finished", true),
	)

	press(m, "f")
	if svc.Filter() != service.FilterActive {
		t.Fatalf("expected active filter, got %v", svc.Filter())
	}
	view := m.View()
	if strings.Contains(view, "finished") || !strings.Contains(view, "open") {
		t.Errorf("expected only active tasks, got:\n%s", view)
	}

	press(m, "3")
	if svc.Filter() != service.FilterCompleted {
		t.Errorf("expected completed filter, got %v", svc.Filter())
	}
	press(m, "f")
	if svc.Filter() != service.FilterAll {
		t.Errorf("expected filter to wrap to all, got %v", svc.Filter())
	}
}

func TestToggleTheme(t *testing.T) {
	m, svc := newModel()
	press(m, "t")
	if svc.Theme() != theme.Dark {
		t.Errorf("expected dark theme, got %v", svc.Theme())
	}
}

func TestSaveErrorShownOnStatusLine(t *testing.T) {
	m, svc := newModel(testutil.Task("a", "a", false))
	svc.Mem.SetErr = errors.New("disk full")

	press(m, " ")

	if task, _ := svc.Get("a"); !task.Completed {
		t.Error("expected toggle applied in memory")
	}
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Errorf("expected storage error on status line, got %q", m.status)
	}
	if !strings.Contains(m.View(), "Storage error: saving tasks: disk full") {
		t.Errorf("expected error in view, got:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel()
	if cmd := press(m, "q"); cmd == nil {
		t.Error("expected quit command")
	}
}

func TestQInInputModeIsText(t *testing.T) {
	m, _ := newModel()
	press(m, "a")
	if cmd := press(m, "q"); cmd != nil {
		t.Error("expected q to be typed, not quit")
	}
	if m.input != "q" {
		t.Errorf("expected input %q, got %q", "q", m.input)
	}
}
