package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/ui"
)

const maxNameWidth = 60

// listItem adapts a Todo to bubbles/list.Item
type listItem struct {
	todo    model.Todo
	editing bool
}

func (i listItem) Title() string       { return i.todo.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Name }

// itemDelegate renders one todo per line followed by its controls.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	name := truncate(it.todo.Name, maxNameWidth)
	if it.todo.IsCompleted {
		box = t.Success.Render(t.BoxChecked)
		name = t.Done.Render(name)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, name, controls(it))
}

func controls(it listItem) string {
	t := ui.Current()
	if it.editing {
		return t.Accent.Render("Update in progress")
	}
	complete := "c mark as complete"
	if it.todo.IsCompleted {
		complete = t.Success.Render("Completed")
	}
	return t.Muted.Render("e edit · ") + complete + t.Muted.Render(" · d delete")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
