package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// isolate points every config source at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{
		"TODO_THEME", "TODO_STORAGE_BACKEND", "TODO_STORAGE_DIR", "TODO_STORAGE_KEY",
		"TODO_STORAGE_DSN", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_LOG_FILE",
		"TODO_SERVE_ADDR", "TODO_SERVE_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Backend: got %q, want %q", cfg.Storage.Backend, BackendFile)
	}
	if cfg.Storage.Key != "todoList" {
		t.Errorf("Key: got %q, want todoList", cfg.Storage.Key)
	}
	if want := DefaultDir(); cfg.Storage.Dir != want {
		t.Errorf("Dir: got %q, want %q", cfg.Storage.Dir, want)
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log: got %#v", cfg.Log)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("Serve.Addr: got %q", cfg.Serve.Addr)
	}
	if cfg.File != "" {
		t.Errorf("File: expected none, got %q", cfg.File)
	}
}

func TestLoad_ProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, "todo.toml", `
theme = "neon"

[storage]
backend = "sqlite"
dir = "/tmp/todo-data"
key = "groceries"

[log]
level = "debug"
format = "json"

[serve]
addr = ":9090"
allowed_origins = ["http://example.test"]
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != "todo.toml" {
		t.Errorf("File: got %q", cfg.File)
	}
	if cfg.Theme != "neon" {
		t.Errorf("Theme: got %q", cfg.Theme)
	}
	want := StorageConfig{Backend: "sqlite", Dir: "/tmp/todo-data", Key: "groceries"}
	if cfg.Storage != want {
		t.Errorf("Storage: got %#v, want %#v", cfg.Storage, want)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log: got %#v", cfg.Log)
	}
	if cfg.Serve.Addr != ":9090" || !reflect.DeepEqual(cfg.Serve.AllowedOrigins, []string{"http://example.test"}) {
		t.Errorf("Serve: got %#v", cfg.Serve)
	}
	if got := cfg.SQLiteDSN(); got != filepath.Join("/tmp/todo-data", "todo.sqlite") {
		t.Errorf("SQLiteDSN: got %q", got)
	}
}

func TestLoad_UserFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "todo", "todo.toml"), "[storage]\nkey = \"from-user\"\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Key != "from-user" {
		t.Errorf("Key: got %q", cfg.Storage.Key)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	writeFile(t, "custom.toml", "[storage]\nkey = \"file\"\ndir = \"file-dir\"\n[log]\nlevel = \"warn\"\n")
	writeFile(t, ".env", "TODO_STORAGE_DIR=dotenv-dir\nTODO_LOG_LEVEL=error\n")
	t.Cleanup(func() {
		os.Unsetenv("TODO_STORAGE_DIR")
		os.Unsetenv("TODO_LOG_LEVEL")
	})
	t.Setenv("TODO_STORAGE_KEY", "env")

	cfg, err := Load("custom.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// env beats file
	if cfg.Storage.Key != "env" {
		t.Errorf("Key: got %q, want env", cfg.Storage.Key)
	}
	// .env values act like env vars, so they beat the file too
	if cfg.Storage.Dir != "dotenv-dir" {
		t.Errorf("Dir: got %q, want dotenv-dir", cfg.Storage.Dir)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Level: got %q, want error", cfg.Log.Level)
	}

	if err := cfg.Apply(Overrides{Key: "flag", LogLevel: "debug"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Storage.Key != "flag" || cfg.Log.Level != "debug" {
		t.Errorf("after Apply: key=%q level=%q", cfg.Storage.Key, cfg.Log.Level)
	}
	if cfg.Storage.Dir != "dotenv-dir" {
		t.Errorf("Apply with empty Dir must not change it; got %q", cfg.Storage.Dir)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load("nope.toml"); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_BadTOML(t *testing.T) {
	isolate(t)
	writeFile(t, "todo.toml", "[storage\n")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"upper-case backend", func(c *Config) { c.Storage.Backend = "SQLite" }, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"empty backend", func(c *Config) { c.Storage.Backend = " " }, true},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = "postgres" }, true},
		{"mysql with dsn", func(c *Config) { c.Storage.Backend = "mysql"; c.Storage.DSN = "u:p@/db" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"empty key defaults", func(c *Config) { c.Storage.Key = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate: err=%v, wantErr=%v", err, tt.wantErr)
			}
			if err == nil && cfg.Storage.Key == "" {
				t.Fatalf("expected key to be defaulted")
			}
		})
	}
}

func TestLoadFromEnv_AllowedOrigins(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_SERVE_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Defaults()
	loadFromEnv(cfg)
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.Serve.AllowedOrigins, want) {
		t.Fatalf("AllowedOrigins: got %#v, want %#v", cfg.Serve.AllowedOrigins, want)
	}
}
