// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/usmankz/coinsight/internal/metrics"
	"go.uber.org/zap"
)

// Server is the HTTP surface the calculator UI talks to.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	MetricsPath string
}

// NewServer creates a new HTTP server wired to the given handler.
func NewServer(cfg Config, h *Handler, reg *metrics.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	var root http.Handler = mux
	if reg != nil {
		root = metrics.HTTPMiddleware(reg)(root)
	}
	root = requestID(logger, root)

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      root,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, h, reg)
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, h *Handler, reg *metrics.Registry) {
	s.mux.HandleFunc("GET /api/v1/quotes", h.Quotes)
	s.mux.HandleFunc("GET /api/v1/rates", h.Rates)
	s.mux.HandleFunc("GET /api/v1/ticker", h.Ticker)
	s.mux.HandleFunc("POST /api/v1/roi", h.ROI)
	s.mux.HandleFunc("POST /api/v1/convert", h.Convert)
	s.mux.HandleFunc("POST /api/v1/compare", h.Compare)
	s.mux.HandleFunc("GET /api/v1/compare/chart.png", h.CompareChart)
	s.mux.HandleFunc("POST /api/v1/refresh", h.Refresh)
	s.mux.HandleFunc("GET /healthz", h.Health)

	if reg != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(reg.Registry, promhttp.HandlerOpts{}))
	}
}

// Handler exposes the composed handler stack (for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
