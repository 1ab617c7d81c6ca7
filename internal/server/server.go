// Package server exposes the stored todo list over a read-only local HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/localtodo/internal/persist"
	"github.com/idilsaglam/localtodo/internal/storage"
)

type Server struct {
	bridge  *persist.Bridge
	store   storage.KV
	logger  *log.Logger
	origins []string
}

func New(bridge *persist.Bridge, store storage.KV, logger *log.Logger, allowedOrigins []string) *Server {
	return &Server{
		bridge:  bridge,
		store:   store,
		logger:  logger,
		origins: allowedOrigins,
	}
}

// HTTPServer wraps the routes in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// ListenAndServe runs srv until ctx is done, then shuts it down with a 5s grace period.
func ListenAndServe(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
