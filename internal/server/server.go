package server

import (
	"context"
	"net/http"
	"time"

	"barkeep/internal/handlers"
	applog "barkeep/internal/log"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr        string
	Ingredients handlers.IngredientService
	Recipes     handlers.RecipeService
	// Ready backs /healthz; nil leaves the sheets unchecked.
	Ready func(ctx context.Context) error
	// Metrics exposes /metrics and records per-route request metrics.
	Metrics bool
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"metrics", cfg.Metrics,
	)

	handlers.Configure(cfg.Ingredients, cfg.Recipes)
	handlers.ConfigureHealth(cfg.Ready)

	applog.Debug(context.Background(), "handler dependencies configured")

	handler := handlers.RequestID(newRouter(cfg.Metrics))

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	applog.Debug(context.Background(), "server handler requested")
	return s.httpServer.Handler
}
