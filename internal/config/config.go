// Package config loads todo settings.
//
// Sources, lowest to highest priority:
//  1. Defaults
//  2. .env in the working directory (never overrides variables already set)
//  3. Config file (--config, else todo.toml / .todo.toml in the working
//     directory, else <user config dir>/todo/todo.toml)
//  4. TODO_* environment variables
//  5. CLI flags (see Apply)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

const (
	DefaultConfigFileName = "todo.toml"
	DefaultStorageKey     = "todoList"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultServeAddr      = "127.0.0.1:8080"
	DefaultTheme          = "classic"

	sqliteFileName = "todo.sqlite"
)

type Config struct {
	Theme   string        `toml:"theme"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Serve   ServeConfig   `toml:"serve"`

	// File is the config file that was read, if any.
	File string `toml:"-"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Key     string `toml:"key"`
	DSN     string `toml:"dsn"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type ServeConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Overrides carries flag values; empty fields leave the config untouched.
type Overrides struct {
	Backend  string
	Dir      string
	Key      string
	DSN      string
	LogLevel string
	LogFile  string
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Theme: DefaultTheme,
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     DefaultDir(),
			Key:     DefaultStorageKey,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Serve: ServeConfig{
			Addr:           DefaultServeAddr,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
	}
}

// DefaultDir is where file and sqlite data live unless configured.
func DefaultDir() string {
	if d, err := os.UserConfigDir(); err == nil && d != "" {
		return filepath.Join(d, "todo")
	}
	return ".todo"
}

// Load builds the configuration. path, when set, must exist.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	file := path
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		if _, err := toml.DecodeFile(file, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
		cfg.File = file
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers flag overrides on top and re-validates.
func (c *Config) Apply(o Overrides) error {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.Storage.Backend, o.Backend)
	set(&c.Storage.Dir, o.Dir)
	set(&c.Storage.Key, o.Key)
	set(&c.Storage.DSN, o.DSN)
	set(&c.Log.Level, o.LogLevel)
	set(&c.Log.File, o.LogFile)
	return c.Validate()
}

// Validate normalizes and checks the configuration.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendSQLite:
	case BackendMySQL, BackendPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage backend %s requires a dsn", c.Storage.Backend)
		}
	case "":
		return errors.New("storage backend is empty")
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = DefaultDir()
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	switch c.Log.Format {
	case "":
		c.Log.Format = DefaultLogFormat
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultServeAddr
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	return nil
}

// SQLiteDSN is the configured dsn, or a database file in the storage dir.
func (c *Config) SQLiteDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return filepath.Join(c.Storage.Dir, sqliteFileName)
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	for _, name := range []string{DefaultConfigFileName, "." + DefaultConfigFileName} {
		if fileExists(name) {
			return name
		}
	}
	if d, err := os.UserConfigDir(); err == nil && d != "" {
		p := filepath.Join(d, "todo", DefaultConfigFileName)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}
