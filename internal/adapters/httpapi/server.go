// Package httpapi serves author rankings over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/devbush/likewrapped/internal/application"
)

// Ranker produces the ranking for one request
type Ranker interface {
	TopAuthors(ctx context.Context, req application.WrappedRequest) (*application.WrappedResult, error)
}

// Defaults fill query parameters the caller leaves out
type Defaults struct {
	Since    string
	Top      int
	Identity string
}

// Server is the REST API server
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewRouter builds the route tree
func NewRouter(ranker Ranker, defaults Defaults, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &WrappedHandler{ranker: ranker, defaults: defaults}

	r := chi.NewRouter()
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", Health)
	r.Route("/api/v1/wrapped", func(r chi.Router) {
		r.Get("/{account}", h.GetWrapped)
	})

	return r
}

// NewServer creates a server listening on addr
func NewServer(addr string, ranker Ranker, defaults Defaults, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(ranker, defaults, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving requests until Stop is called
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
