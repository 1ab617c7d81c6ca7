package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

type keyMap struct {
	Edit     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Form     key.Binding
	Save     key.Binding
	Clear    key.Binding
	Focus    key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Complete: key.NewBinding(key.WithKeys("c", " "), key.WithHelp("c/space", "mark as complete")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Form:     key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save locally")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete locally")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Form, k.Edit, k.Complete, k.Delete, k.Save, k.Clear}
}

func (k keyMap) full() []key.Binding {
	return append(k.short(), k.Focus)
}

// listKeyMap frees keys the list would otherwise claim (d, u, esc) for our own bindings.
func listKeyMap() list.KeyMap {
	km := list.DefaultKeyMap()
	km.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l/pgdn", "next page"))
	km.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h/pgup", "prev page"))
	km.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	return km
}
