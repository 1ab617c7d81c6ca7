// Package export renders a todo list for sharing outside the app.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/idilsaglam/localtodo/internal/model"
)

// Formats lists the accepted format names.
var Formats = []string{"json", "csv", "md", "pdf"}

// Render encodes todos in format.
func Render(todos []model.Todo, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return renderJSON(todos)
	case "csv":
		return renderCSV(todos)
	case "md", "markdown":
		return []byte(Markdown(todos)), nil
	case "pdf":
		return renderPDF(todos)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func renderJSON(todos []model.Todo) ([]byte, error) {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func renderCSV(todos []model.Todo) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "name", "isCompleted"})
	for _, t := range todos {
		_ = w.Write([]string{strconv.Itoa(t.ID), t.Name, strconv.FormatBool(t.IsCompleted)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Markdown renders a GitHub-style checklist.
func Markdown(todos []model.Todo) string {
	var b strings.Builder
	b.WriteString("# Todos\n\n")
	if len(todos) == 0 {
		b.WriteString("_no items_\n")
		return b.String()
	}
	for _, t := range todos {
		box := " "
		if t.IsCompleted {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, t.Name)
	}
	done, pending := model.Stats(todos)
	fmt.Fprintf(&b, "\n%d done, %d pending\n", done, pending)
	return b.String()
}

func renderPDF(todos []model.Todo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Todos")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 11)
	if len(todos) == 0 {
		pdf.Cell(40, 8, "no items")
	}
	for _, t := range todos {
		box := "[ ]"
		if t.IsCompleted {
			box = "[x]"
		}
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%s %d. %s", box, t.ID, t.Name)), "0", "L", false)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
