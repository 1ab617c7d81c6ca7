package todo

import "github.com/idilsaglam/localtodo/internal/model"

// Editor tracks the one todo (if any) selected for editing and decides
// whether a form submit adds or updates.
type Editor struct {
	target *model.Todo
}

// Begin selects t for editing and returns the text to prefill the input with.
func (e *Editor) Begin(t model.Todo) string {
	e.target = &t
	return t.Name
}

// Submit turns the current input text into an action and leaves edit mode.
func (e *Editor) Submit(text string) Action {
	if e.target == nil {
		return Add(text)
	}
	id := e.target.ID
	e.target = nil
	return Edit(id, text)
}

func (e *Editor) Cancel() { e.target = nil }

// Active reports whether edit mode is on.
func (e Editor) Active() bool { return e.target != nil }

// Editing reports whether id is the todo being edited.
func (e Editor) Editing(id int) bool { return e.target != nil && e.target.ID == id }

// SubmitLabel is the caption of the form's submit control.
func (e Editor) SubmitLabel() string {
	if e.Active() {
		return "Update"
	}
	return "Add"
}
