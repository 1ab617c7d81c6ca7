package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/localtodo/internal/persist"
	"github.com/idilsaglam/localtodo/internal/todo"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.status.Update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		return m.loaded(msg.res)

	case persistedMsg:
		return m.persisted(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	var inputCmd, listCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.list, listCmd = m.list.Update(msg)
	return m, tea.Batch(inputCmd, listCmd)
}

func (m Model) loaded(res persist.LoadResult) (tea.Model, tea.Cmd) {
	if res.Err != nil {
		m.logger.Warn("stored list unreadable", "key", m.bridge.Key(), "err", res.Err)
		return m, m.status.Set(MsgLoadFailed)
	}
	if !res.OK() {
		m.logger.Debug("no stored list", "key", m.bridge.Key())
		return m, nil
	}
	m.logger.Info("loaded", "key", m.bridge.Key(), "items", len(res.Todos))
	return m, m.dispatch(todo.Load(res.Todos))
}

func (m Model) persisted(msg persistedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("storage failed", "key", m.bridge.Key(), "err", msg.err)
		return m, m.status.Set("Storage error: " + msg.err.Error())
	}
	switch {
	case msg.op == opSave && msg.text == persist.MsgSaved:
		m.dirty = false
	case msg.op == opClear && msg.text == persist.MsgDeleted:
		m.dirty = len(m.state.Todos) > 0
	}
	m.list.Title = m.header()
	m.logger.Debug("storage", "key", m.bridge.Key(), "result", msg.text)
	return m, m.status.Set(msg.text)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		editing := m.editor.Active()
		a := m.editor.Submit(m.input.Value())
		m.input.SetValue("")
		cmd := m.dispatch(a)
		if m.err != nil {
			return m, cmd
		}
		if editing {
			m.focusList()
		}
		return m, cmd
	case "esc":
		if m.editor.Active() {
			m.editor.Cancel()
			m.input.SetValue("")
			cmd := m.refresh()
			m.focusList()
			return m, cmd
		}
		m.focusList()
		return m, nil
	case "tab":
		m.focusList()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Form):
		return m, m.focusForm()

	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok || m.editor.Editing(t.ID) {
			return m, nil
		}
		m.input.SetValue(m.editor.Begin(t))
		m.input.CursorEnd()
		return m, tea.Batch(m.refresh(), m.focusForm())

	case key.Matches(msg, m.keys.Complete):
		t, ok := m.selected()
		if !ok || t.IsCompleted || m.editor.Editing(t.ID) {
			return m, nil
		}
		return m, m.dispatch(todo.Complete(t.ID))

	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok || m.editor.Editing(t.ID) {
			return m, nil
		}
		return m, m.dispatch(todo.Delete(t.ID))

	case key.Matches(msg, m.keys.Save):
		if cmd := m.dispatch(todo.Save()); m.err != nil {
			return m, cmd
		}
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.Clear):
		return m, m.clearCmd()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
