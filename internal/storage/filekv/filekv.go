// Package filekv stores each key as a file in one directory.
// Human-readable and portable; fine for a local single-user tool.
package filekv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/localtodo/internal/storage"
)

const fileExt = ".json"

type Store struct {
	Dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filekv: empty dir")
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if err := storage.ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, key+fileExt), nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(b), nil
}

// Set writes through a temp file and renames it over the target so a reader
// never sees a half-written value.
func (s *Store) Set(_ context.Context, key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Ping checks that the directory is usable (missing is fine; it is created on first Set).
func (s *Store) Ping(context.Context) error {
	fi, err := os.Stat(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("not a directory: %s", s.Dir)
	}
	return nil
}

func (s *Store) Close() error { return nil }
