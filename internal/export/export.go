// Package export renders a task view as JSON, CSV or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"todo/internal/output"
	"todo/internal/service"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Export renders the tasks of v in format. JSON uses the persisted record
// shape; CSV and PDF add a human-readable creation time.
func Export(v service.View, format string) ([]byte, error) {
	tasks := v.Tasks
	if tasks == nil {
		tasks = []service.Task{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "text", "completed", "created_at"})
		for _, t := range tasks {
			_ = w.Write([]string{t.ID, t.Text, strconv.FormatBool(t.Completed), createdRFC3339(t.CreatedAt)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "pdf":
		return renderPDF(v, tasks)
	default:
		return nil, fmt.Errorf("unknown format: %s (want %s)", format, strings.Join(Formats, ", "))
	}
}

func createdRFC3339(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func renderPDF(v service.View, tasks []service.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Tasks", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, fmt.Sprintf("Tasks (%s)", v.Filter))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, tr(output.EmptyMessage(v)), "0", "L", false)
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s  (created %s)", box, t.Text, output.FormatCreated(t.CreatedAt))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, tr(output.Summary(v.Stats)), "0", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
