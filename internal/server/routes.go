package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/persist"
	"github.com/idilsaglam/localtodo/internal/storage"
	"github.com/idilsaglam/localtodo/internal/todo"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", s.listTodosHandler)
		r.Get("/{id}", s.getTodoHandler)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := map[string]string{"status": "up", "key": s.bridge.Key()}
	if p, ok := s.store.(storage.Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			stats["status"] = "down"
			stats["error"] = err.Error()
			respondWithJSON(w, http.StatusServiceUnavailable, stats)
			return
		}
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, ok := s.load(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid todo id")
		return
	}
	todos, ok := s.load(w, r)
	if !ok {
		return
	}
	t, found := todo.Find(todos, id)
	if !found {
		respondWithError(w, http.StatusNotFound, "todo not found")
		return
	}
	respondWithJSON(w, http.StatusOK, t)
}

// load reads the stored list, writing an error response when it cannot.
func (s *Server) load(w http.ResponseWriter, r *http.Request) ([]model.Todo, bool) {
	res := s.bridge.LoadOnStart(r.Context())
	if res.Err != nil {
		s.logger.Warn("stored list unreadable", "key", s.bridge.Key(), "err", res.Err)
		status := http.StatusInternalServerError
		if errors.Is(res.Err, persist.ErrMalformed) {
			status = http.StatusUnprocessableEntity
		}
		respondWithError(w, status, res.Err.Error())
		return nil, false
	}
	if !res.Found {
		return []model.Todo{}, true
	}
	return res.Todos, true
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"error marshalling response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
