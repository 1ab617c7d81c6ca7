package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/ui"
)

func (m *Model) applyTheme() {
	t := ui.Current()
	m.list.Styles.Title = t.Title
	m.list.Styles.HelpStyle = t.Help
	m.list.Styles.PaginationStyle = t.Help
}

func (m Model) header() string {
	t := ui.Current()
	done, pending := model.Stats(m.state.Todos)
	h := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(m.state.Todos),
	)
	if m.dirty {
		h += "  " + t.Pending.Render("unsaved changes")
	}
	return h
}

func (m Model) View() string {
	t := ui.Current()

	formTitle := "Add a todo"
	if m.editor.Active() {
		formTitle = "Edit todo"
	}
	button := t.Muted.Render("[ " + m.editor.SubmitLabel() + " ]")
	if m.focus == focusForm {
		button = t.Accent.Render("[ " + m.editor.SubmitLabel() + " ]")
	}
	form := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(t.Title.Render(formTitle) + "\n" + m.input.View() + "  " + button)

	controls := t.Muted.Render("s Save Locally · x Delete Locally · tab switch focus · q quit")

	var b strings.Builder
	b.WriteString(form)
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(controls)
	if s := m.status.Text(); s != "" {
		b.WriteString("\n")
		b.WriteString(t.Accent.Render(s))
	}
	return ui.Panel([]string{b.String()})
}
