// Package persist moves the todo list in and out of one storage key.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/storage"
)

// DefaultKey is the storage key the list lives under.
const DefaultKey = "todoList"

// User-facing outcomes of Save and Clear.
const (
	MsgNothingToSave   = "Nothing to save, Please add items"
	MsgSaved           = "Items saved locally"
	MsgNothingToDelete = "Nothing to delete from the storage.."
	MsgDeleted         = "Items deleted Locally"
)

// ErrMalformed marks stored data that is not a valid todo list.
var ErrMalformed = errors.New("malformed stored todo list")

type Bridge struct {
	store storage.KV
	key   string
}

// New returns a bridge over store; an empty key means DefaultKey.
func New(store storage.KV, key string) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	return &Bridge{store: store, key: key}
}

func (b *Bridge) Key() string { return b.key }

// Save writes the whole list under the key. An empty list is not written.
func (b *Bridge) Save(ctx context.Context, todos []model.Todo) (string, error) {
	if len(todos) == 0 {
		return MsgNothingToSave, nil
	}
	raw, err := Encode(todos)
	if err != nil {
		return "", err
	}
	if err := b.store.Set(ctx, b.key, string(raw)); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	return MsgSaved, nil
}

// Clear removes the key if it holds a value.
func (b *Bridge) Clear(ctx context.Context) (string, error) {
	v, err := b.store.Get(ctx, b.key)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("clear: %w", err)
	}
	if errors.Is(err, storage.ErrNotFound) || v == "" {
		return MsgNothingToDelete, nil
	}
	if err := b.store.Remove(ctx, b.key); err != nil {
		return "", fmt.Errorf("clear: %w", err)
	}
	return MsgDeleted, nil
}

// LoadResult is the outcome of reading the key at startup.
// Found is false when the key was empty; Err is set when a value was present
// (or the store failed) but no list could be produced.
type LoadResult struct {
	Todos []model.Todo
	Found bool
	Err   error
}

// OK reports whether the caller should dispatch Todos as the loaded list.
func (r LoadResult) OK() bool { return r.Found && r.Err == nil }

// LoadOnStart reads and decodes the stored list. It never panics on bad data.
func (b *Bridge) LoadOnStart(ctx context.Context) LoadResult {
	v, err := b.store.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return LoadResult{}
		}
		return LoadResult{Err: fmt.Errorf("load: %w", err)}
	}
	if v == "" {
		return LoadResult{}
	}
	todos, err := Decode([]byte(v))
	if err != nil {
		return LoadResult{Found: true, Err: err}
	}
	return LoadResult{Todos: todos, Found: true}
}

// Encode is the persisted form: compact JSON, fields in struct order.
func Encode(todos []model.Todo) ([]byte, error) {
	if todos == nil {
		todos = []model.Todo{}
	}
	raw, err := json.Marshal(todos)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return raw, nil
}

// Decode parses and validates a stored list.
func Decode(raw []byte) ([]model.Todo, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}
	if err := validateList(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var todos []model.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrMalformed, err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}
