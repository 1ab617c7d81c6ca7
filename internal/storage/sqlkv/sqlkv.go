// Package sqlkv keeps keys in a single SQL table through database/sql.
// SQLite (modernc.org/sqlite) and MySQL (go-sql-driver/mysql) are supported.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/localtodo/internal/storage"
)

// Dialect carries the driver name and the statements that differ per engine.
type Dialect struct {
	Name    string
	Driver  string
	Pragmas []string
	Schema  string
	Upsert  string
}

var SQLite = Dialect{
	Name:   "sqlite",
	Driver: "sqlite",
	// WAL enables one writer + many readers; busy_timeout avoids "database is locked".
	Pragmas: []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	},
	Schema: `CREATE TABLE IF NOT EXISTS todo_kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	)`,
	Upsert: `INSERT INTO todo_kv(k, v, updated_at_unixms) VALUES(?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
}

var MySQL = Dialect{
	Name:   "mysql",
	Driver: "mysql",
	Schema: `CREATE TABLE IF NOT EXISTS todo_kv (
		k VARCHAR(191) NOT NULL PRIMARY KEY,
		v LONGTEXT NOT NULL,
		updated_at_unixms BIGINT NOT NULL
	)`,
	Upsert: `INSERT INTO todo_kv(k, v, updated_at_unixms) VALUES(?, ?, ?)
		ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at_unixms = VALUES(updated_at_unixms)`,
}

// DialectFor maps a backend name to its dialect.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case SQLite.Name:
		return SQLite, nil
	case MySQL.Name:
		return MySQL, nil
	}
	return Dialect{}, fmt.Errorf("sqlkv: unknown dialect %q", name)
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects, applies pragmas and creates the table if needed.
func Open(ctx context.Context, d Dialect, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlkv: empty %s dsn", d.Name)
	}
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if d.Driver == SQLite.Driver {
		// One connection keeps pragmas applied for every statement.
		db.SetMaxOpenConns(1)
	}
	for _, p := range d.Pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, d.Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, dialect: d}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM todo_kv WHERE k = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("select: %w", err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM todo_kv WHERE k = ?`, key); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
