package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/localtodo/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stored list read-only over HTTP",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(cmd, false); err != nil {
				return err
			}
			defer app.close()

			if addr == "" {
				addr = app.cfg.Serve.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := server.New(app.bridge, app.store, app.logger, app.cfg.Serve.AllowedOrigins)
			app.logger.Debug("serve", "backend", app.cfg.Storage.Backend, "key", app.bridge.Key(), "origins", app.cfg.Serve.AllowedOrigins)
			return server.ListenAndServe(ctx, s.HTTPServer(addr), app.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
