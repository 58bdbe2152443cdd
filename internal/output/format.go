// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todo/internal/service"
)

const (
	// EmptyList is shown when there are no tasks at all.
	EmptyList = "No tasks yet. Add one with: todo add <text>"

	// EmptyFilter is shown when tasks exist but none match the filter.
	EmptyFilter = "No tasks match this filter."

	// CreatedLayout is the local-time layout of the "Created" line.
	CreatedLayout = "Jan 2, 2006 15:04"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces,
// checkbox, text).
func FormatTask(w io.Writer, st Styles, num int, task service.Task) {
	box := "[ ]"
	text := st.Active.Render(normalizeText(task.Text))
	if task.Completed {
		box = "[x]"
		text = st.Done.Render(normalizeText(task.Text))
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, text)
}

// FormatTaskMeta formats the detail line printed under a task by list --long.
// Format: "          Created {TIME}  id {ID}\n"
func FormatTaskMeta(w io.Writer, st Styles, task service.Task) {
	meta := fmt.Sprintf("Created %s  id %s", FormatCreated(task.CreatedAt), task.ID)
	fmt.Fprintf(w, "          %s\n", st.Meta.Render(meta))
}

// FormatCreated renders epoch milliseconds in local time.
func FormatCreated(ms int64) string {
	return time.UnixMilli(ms).Local().Format(CreatedLayout)
}

// FormatSummary formats the footer: "N item(s) left · X% complete".
func FormatSummary(w io.Writer, st Styles, stats service.Stats) {
	fmt.Fprintln(w, st.Summary.Render(Summary(stats)))
}

// Summary returns the footer text without styling.
func Summary(stats service.Stats) string {
	return fmt.Sprintf("%s · %d%% complete", ItemsLeft(stats.Active), stats.CompletionRate)
}

// ItemsLeft returns "1 item left" or "N items left".
func ItemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

// EmptyMessage picks the empty-state text for a view with no visible tasks.
func EmptyMessage(v service.View) string {
	if v.Stats.Total > 0 {
		return EmptyFilter
	}
	return EmptyList
}

// FormatView writes the full list: visible tasks numbered from 1 (or the
// empty-state message) followed by the summary.
func FormatView(w io.Writer, st Styles, v service.View, long bool) {
	if len(v.Tasks) == 0 {
		fmt.Fprintln(w, st.Empty.Render(EmptyMessage(v)))
	}
	for i, task := range v.Tasks {
		FormatTask(w, st, i+1, task)
		if long {
			FormatTaskMeta(w, st, task)
		}
	}
	FormatSummary(w, st, v.Stats)
}

// normalizeText normalizes task text for display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}

// FormatListName formats a remote list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := list.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	if list.IsDefault {
		title += " [default]"
	}
	fmt.Fprintln(w, title)
}
