// Package cli wires the cobra command tree: the TUI on the bare command and
// one-shot subcommands for scripting.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/localtodo/internal/config"
	"github.com/idilsaglam/localtodo/internal/logging"
	"github.com/idilsaglam/localtodo/internal/persist"
	"github.com/idilsaglam/localtodo/internal/status"
	"github.com/idilsaglam/localtodo/internal/storage"
	"github.com/idilsaglam/localtodo/internal/storage/filekv"
	"github.com/idilsaglam/localtodo/internal/storage/gormkv"
	"github.com/idilsaglam/localtodo/internal/storage/memory"
	"github.com/idilsaglam/localtodo/internal/storage/sqlkv"
	"github.com/idilsaglam/localtodo/internal/tui"
	"github.com/idilsaglam/localtodo/internal/ui"
)

const logFileName = "todo.log"

type App struct {
	ConfigPath string
	Overrides  config.Overrides

	cfg     *config.Config
	logger  *log.Logger
	store   storage.KV
	bridge  *persist.Bridge
	closers []io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A local-first todo list (TUI + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo add "Buy milk"
  todo ls --group
  todo done 2
  todo export --format csv -o todos.csv
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd, app)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &exitError{code: ExitUsage, err: err, hint: "Hint: run `" + c.CommandPath() + " --help`"}
	})

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "Path to a todo.toml config file")
	f.StringVar(&app.Overrides.Backend, "backend", "", "Storage backend (file|memory|sqlite|mysql|postgres)")
	f.StringVar(&app.Overrides.Dir, "dir", "", "Storage directory for the file and sqlite backends")
	f.StringVar(&app.Overrides.DSN, "dsn", "", "Database DSN for the sqlite, mysql and postgres backends")
	f.StringVar(&app.Overrides.Key, "key", "", "Storage key the list lives under")
	f.StringVar(&app.Overrides.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	f.StringVar(&app.Overrides.LogFile, "log-file", "", "Write logs to this file")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// Execute runs the command tree with os.Args, reports any error on stderr and
// returns the exit code.
func Execute() int {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	writeErr(cmd.ErrOrStderr(), err)
	return ExitCode(err)
}

func writeErr(w io.Writer, err error) {
	ui.Fail(w, err.Error())
	if h := hintFor(err); h != "" {
		ui.Hint(w, h)
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	if err := app.open(cmd, true); err != nil {
		return err
	}
	defer app.close()

	out, err := tui.Run(cmd.Context(), tui.Options{
		Bridge:    app.bridge,
		Logger:    app.logger,
		StatusTTL: status.DefaultTTL,
	})
	if err != nil {
		return err
	}
	if out.Unsaved {
		ui.Hint(cmd.OutOrStdout(), "Unsaved changes were discarded. Press s in the TUI to save locally.")
	}
	return nil
}

// open loads config, builds the logger and connects storage. Interactive
// sessions log to a file since the TUI owns the terminal.
func (app *App) open(cmd *cobra.Command, interactive bool) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Apply(app.Overrides); err != nil {
		return &exitError{code: ExitUsage, err: fmt.Errorf("config: %w", err)}
	}
	app.cfg = cfg
	ui.SetTheme(cfg.Theme)

	opts := logging.DefaultOptions()
	opts.Level = cfg.Log.Level
	opts.Format = cfg.Log.Format

	logFile := cfg.Log.File
	if interactive && logFile == "" {
		logFile = filepath.Join(cfg.Storage.Dir, logFileName)
	}
	if logFile != "" {
		logger, closer, err := logging.OpenFile(logFile, opts)
		if err != nil {
			return err
		}
		app.logger = logger
		app.closers = append(app.closers, closer)
	} else {
		logger, err := logging.New(cmd.ErrOrStderr(), opts)
		if err != nil {
			return &exitError{code: ExitUsage, err: err}
		}
		app.logger = logger
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		app.close()
		return err
	}
	app.store = st
	app.closers = append([]io.Closer{st}, app.closers...)
	app.bridge = persist.New(st, cfg.Storage.Key)
	app.logger.Debug("storage ready", "backend", cfg.Storage.Backend, "key", app.bridge.Key())
	return nil
}

func (app *App) close() {
	for _, c := range app.closers {
		if err := c.Close(); err != nil && app.logger != nil {
			app.logger.Warn("close", "err", err)
		}
	}
	app.closers = nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		return filekv.New(cfg.Storage.Dir)
	case config.BackendSQLite:
		if cfg.Storage.DSN == "" {
			if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		return sqlkv.Open(ctx, sqlkv.SQLite, cfg.SQLiteDSN())
	case config.BackendMySQL:
		return sqlkv.Open(ctx, sqlkv.MySQL, cfg.Storage.DSN)
	case config.BackendPostgres:
		return gormkv.Open(ctx, cfg.Storage.DSN)
	}
	return nil, errors.New("unknown storage backend: " + cfg.Storage.Backend)
}
