// Package server implements the AINode capability and option resolution HTTP API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsforecast/ainode/internal/family"
	"github.com/tsforecast/ainode/internal/resolver"
)

// Server is the AINode HTTP API server.
type Server struct {
	registry *family.Registry
	resolver *resolver.Resolver
	logger   *slog.Logger
	router   chi.Router
	addr     string
	srv      *http.Server
}

// New creates a new HTTP server. maxBody <= 0 disables the body size limit.
func New(addr string, reg *family.Registry, res *resolver.Resolver, maxBody int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		registry: reg,
		resolver: res,
		logger:   logger,
		addr:     addr,
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))
	if maxBody > 0 {
		r.Use(MaxBodyMiddleware(maxBody))
	}

	s.router = r
	s.registerRoutes(r)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start begins serving HTTP requests. It blocks until the server stops and
// returns http.ErrServerClosed after Stop.
func (s *Server) Start() error {
	s.logger.Info("ainode server listening", "addr", s.addr)
	return s.srv.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
