// Package http exposes the calculators as a JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/finkit/finproj/internal/calculation"
	"github.com/finkit/finproj/internal/config"
	"github.com/finkit/finproj/internal/locale"
)

// Server is the HTTP API server
type Server struct {
	cfg        config.ServerConfig
	router     chi.Router
	httpServer *http.Server
	metrics    *Metrics
	logger     *zap.Logger
}

// NewServer wires the router, middleware and handlers
func NewServer(cfg config.ServerConfig, engine *calculation.CalculationEngine, loc locale.Locale, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		router:  chi.NewRouter(),
		metrics: NewMetrics(),
		logger:  logger.Named("http"),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(Recoverer(s.logger))
	s.router.Use(s.metrics.Instrument)
	if cfg.RateLimit.Enabled {
		s.router.Use(NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, s.logger).Handler)
	}
	if cfg.MaxBodyBytes > 0 {
		s.router.Use(MaxBody(cfg.MaxBodyBytes))
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = render.Render(w, r, ErrNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = render.Render(w, r, ErrMethodNotAllowed)
	})

	NewHandler(engine, loc, s.metrics, s.logger, version).RegisterRoutes(s.router)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
