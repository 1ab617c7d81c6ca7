// Package storage defines the key-value capability the todo list is persisted
// through. Values are opaque strings; a key is only ever written, read or
// removed whole.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KV is a whole-value key-value store.
// Remove on a missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ValidateKey rejects keys that cannot be used by every backend.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("empty storage key")
	}
	if len(key) > 191 {
		return fmt.Errorf("storage key too long: %d bytes", len(key))
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	return nil
}
