// Package server exposes the price intelligence API over HTTP: the consumer
// smart-fuel endpoint, the B2B diesel index, and the operational endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/httprate"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hinwise/smarttanken/internal/config"
	"github.com/hinwise/smarttanken/internal/engine"
	"github.com/hinwise/smarttanken/internal/observability"
	"github.com/hinwise/smarttanken/internal/plz"
)

// ObservationSource is the gateway capability the handlers depend on.
type ObservationSource interface {
	FetchObservations(ctx context.Context, origin engine.Coordinate, radiusKm float64, fuel engine.FuelType) ([]engine.FuelObservation, error)
}

// Server wires the postal table, the observation source, and the engine into
// HTTP handlers.
type Server struct {
	cfg     *config.Config
	table   *plz.Table
	source  ObservationSource
	clock   clockwork.Clock
	market  *time.Location
	metrics *observability.Metrics
	logger  *httplog.Logger
}

// New creates a Server. The clock is injectable so handler tests can pin
// the trend window.
func New(cfg *config.Config, table *plz.Table, source ObservationSource, clock clockwork.Clock, metrics *observability.Metrics, logger *httplog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		table:   table,
		source:  source,
		clock:   clock,
		market:  cfg.Market,
		metrics: metrics,
		logger:  logger,
	}
}

// NewLogger builds the request logger, which doubles as the application
// logger.
func NewLogger(cfg *config.Config) *httplog.Logger {
	return httplog.NewLogger("smarttanken", httplog.Options{
		JSON:            cfg.LogFormat == "json",
		LogLevel:        parseLogLevel(cfg.LogLevel),
		Concise:         true,
		QuietDownPeriod: 10 * time.Second,
	})
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(s.cfg.RateLimitPerMinute, time.Minute))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/smart-fuel", s.handleSmartFuel)
	r.Get("/diesel-index", s.handleDieselIndex)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
