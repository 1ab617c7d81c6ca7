// Package tui is the interactive terminal front end: an add/edit form above
// the todo list, with save and clear bound to the storage bridge.
package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/localtodo/internal/logging"
	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/persist"
	"github.com/idilsaglam/localtodo/internal/status"
	"github.com/idilsaglam/localtodo/internal/todo"
)

// MsgLoadFailed is shown when the stored list exists but cannot be read.
const MsgLoadFailed = "Stored items could not be read; starting empty"

type focusArea int

const (
	focusForm focusArea = iota
	focusList
)

type Options struct {
	Bridge    *persist.Bridge
	Logger    *log.Logger
	StatusTTL time.Duration
}

// Outcome is what the session left behind when it quit.
type Outcome struct {
	Todos   []model.Todo
	Unsaved bool
}

type loadedMsg struct{ res persist.LoadResult }

type persistOp int

const (
	opSave persistOp = iota
	opClear
)

type persistedMsg struct {
	op   persistOp
	text string
	err  error
}

type Model struct {
	ctx    context.Context
	bridge *persist.Bridge
	logger *log.Logger

	state  todo.State
	editor todo.Editor
	status status.Line
	dirty  bool
	err    error

	list  list.Model
	input textinput.Model
	focus focusArea
	keys  keyMap

	width, height int
}

func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.KeyMap = listKeyMap()
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Focus()

	m := Model{
		ctx:    ctx,
		bridge: opts.Bridge,
		logger: logger,
		state:  todo.NewState(),
		status: status.New(opts.StatusTTL),
		list:   l,
		input:  ti,
		focus:  focusForm,
		keys:   keys,
		width:  80,
		height: 24,
	}
	m.applyTheme()
	m.resize()
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until the user
// quits. A reducer failure ends the session and is returned.
func Run(ctx context.Context, opts Options) (Outcome, error) {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return Outcome{}, nil
	}
	out := Outcome{Todos: fm.Todos(), Unsaved: fm.dirty}
	return out, fm.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

// Todos is a copy of the in-memory list.
func (m Model) Todos() []model.Todo { return slices.Clone(m.state.Todos) }

// Err is the reducer error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Dirty reports changes made since the last load or successful save.
func (m Model) Dirty() bool { return m.dirty }

func (m Model) Status() string { return m.status.Text() }

func (m Model) loadCmd() tea.Cmd {
	ctx, b := m.ctx, m.bridge
	return func() tea.Msg {
		return loadedMsg{res: b.LoadOnStart(ctx)}
	}
}

func (m Model) saveCmd() tea.Cmd {
	ctx, b := m.ctx, m.bridge
	snapshot := slices.Clone(m.state.Todos)
	return func() tea.Msg {
		text, err := b.Save(ctx, snapshot)
		return persistedMsg{op: opSave, text: text, err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	ctx, b := m.ctx, m.bridge
	return func() tea.Msg {
		text, err := b.Clear(ctx)
		return persistedMsg{op: opClear, text: text, err: err}
	}
}

// dispatch runs a through the reducer. On failure the session quits.
func (m *Model) dispatch(a todo.Action) tea.Cmd {
	next, err := todo.Reduce(m.state, a)
	if err != nil {
		m.err = err
		m.logger.Error("reducer failed", "action", a.Kind, "err", err)
		return tea.Quit
	}
	m.state = next
	switch a.Kind {
	case todo.KindLoad:
		m.dirty = false
	case todo.KindSave:
	default:
		m.dirty = true
	}
	m.logger.Debug("dispatched", "action", a.Kind, "id", a.ID, "items", len(m.state.Todos))
	return m.refresh()
}

// refresh rebuilds the list items and header from state.
func (m *Model) refresh() tea.Cmd {
	items := make([]list.Item, 0, len(m.state.Todos))
	for _, t := range m.state.Todos {
		items = append(items, listItem{todo: t, editing: m.editor.Editing(t.ID)})
	}
	cmd := m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = m.header()
	return cmd
}

func (m *Model) focusForm() tea.Cmd {
	m.focus = focusForm
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m *Model) resize() {
	// form box (3) + controls (1) + status (1) + outer panel (2)
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 6
}

var _ tea.Model = Model{}
