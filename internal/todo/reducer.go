// Package todo holds the list state machine and the edit-mode coordinator.
package todo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/idilsaglam/localtodo/internal/model"
)

// ErrUnknownAction is returned for an action kind the reducer does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Kind names a reducer transition.
type Kind string

const (
	KindLoad     Kind = "LOAD_ITEM"
	KindAdd      Kind = "ADD-ITEM"
	KindDelete   Kind = "DELETE-ITEM"
	KindEdit     Kind = "EDIT-ITEM"
	KindComplete Kind = "COMPLETE-ITEM"
	KindSave     Kind = "SAVE-ITEM"
)

// Action is a single transition request. Which fields are read depends on Kind.
type Action struct {
	Kind  Kind
	ID    int
	Value string
	List  []model.Todo
}

func Load(list []model.Todo) Action   { return Action{Kind: KindLoad, List: list} }
func Add(name string) Action          { return Action{Kind: KindAdd, Value: name} }
func Delete(id int) Action            { return Action{Kind: KindDelete, ID: id} }
func Edit(id int, name string) Action { return Action{Kind: KindEdit, ID: id, Value: name} }
func Complete(id int) Action          { return Action{Kind: KindComplete, ID: id} }
func Save() Action                    { return Action{Kind: KindSave} }

// State is the list plus the id counter used for new todos.
// NextID only grows, so ids are not reused after deletions.
type State struct {
	Todos  []model.Todo
	NextID int
}

// NewState returns an empty list whose first todo gets id 1.
func NewState() State {
	return State{Todos: []model.Todo{}, NextID: 1}
}

// Reduce applies a to s. Edit and Complete mutate the matching todo in place
// and keep the existing slice; missing ids are silent no-ops.
func Reduce(s State, a Action) (State, error) {
	if s.NextID < 1 {
		s.NextID = nextIDFor(s.Todos)
	}

	switch a.Kind {
	case KindLoad:
		list := a.List
		if list == nil {
			list = []model.Todo{}
		}
		return State{Todos: list, NextID: nextIDFor(list)}, nil

	case KindAdd:
		s.Todos = append(s.Todos, model.Todo{
			ID:   s.NextID,
			Name: a.Value,
		})
		s.NextID++
		return s, nil

	case KindDelete:
		s.Todos = slices.DeleteFunc(slices.Clone(s.Todos), func(t model.Todo) bool {
			return t.ID == a.ID
		})
		return s, nil

	case KindEdit:
		if i := indexOf(s.Todos, a.ID); i >= 0 {
			s.Todos[i].Name = a.Value
		}
		return s, nil

	case KindComplete:
		if i := indexOf(s.Todos, a.ID); i >= 0 {
			s.Todos[i].IsCompleted = !s.Todos[i].IsCompleted
		}
		return s, nil

	case KindSave:
		return s, nil
	}

	return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

// Find returns the first todo with id.
func Find(todos []model.Todo, id int) (model.Todo, bool) {
	if i := indexOf(todos, id); i >= 0 {
		return todos[i], true
	}
	return model.Todo{}, false
}

func indexOf(todos []model.Todo, id int) int {
	return slices.IndexFunc(todos, func(t model.Todo) bool { return t.ID == id })
}

func nextIDFor(todos []model.Todo) int {
	next := 1
	for _, t := range todos {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
