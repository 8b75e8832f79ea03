// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pantryhq/pantry/internal/infrastructure/config"
	"github.com/pantryhq/pantry/internal/infrastructure/http/handlers"
	"github.com/pantryhq/pantry/internal/infrastructure/http/middleware"
	"github.com/pantryhq/pantry/internal/infrastructure/monitoring"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"github.com/pantryhq/pantry/pkg/healthcheck"
	"go.uber.org/zap"
)

// Server is the JSON API HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	router   *chi.Mux
	kitchen  *handlers.KitchenHandlers
	verifier middleware.TokenVerifier
	limiter  *middleware.RateLimiter
	metrics  *monitoring.MetricsCollector
	health   *healthcheck.HealthCheck
}

// Params groups the collaborators of the server. Limiter and Metrics may
// be nil, which disables rate limiting and the metrics endpoint.
type Params struct {
	Config   *config.Config
	Logger   *zap.Logger
	Kitchen  *handlers.KitchenHandlers
	Verifier middleware.TokenVerifier
	Limiter  *middleware.RateLimiter
	Metrics  *monitoring.MetricsCollector
	Health   *healthcheck.HealthCheck
}

// NewServer creates a new API server instance
func NewServer(p Params) *Server {
	s := &Server{
		config:   p.Config,
		logger:   p.Logger.Named("http"),
		kitchen:  p.Kitchen,
		verifier: p.Verifier,
		limiter:  p.Limiter,
		metrics:  p.Metrics,
		health:   p.Health,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", p.Config.Server.Host, p.Config.Server.Port),
		Handler:        s.router,
		ReadTimeout:    p.Config.Server.ReadTimeout,
		WriteTimeout:   p.Config.Server.WriteTimeout,
		IdleTimeout:    p.Config.Server.IdleTimeout,
		MaxHeaderBytes: p.Config.Server.MaxHeaderBytes,
		ErrorLog:       zap.NewStdLog(s.logger),
	}

	return s
}

// setupRoutes configures the router
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.HTTPMiddleware())
	}
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	}
	if s.config.Server.EnableCompression {
		r.Use(chimiddleware.Compress(5))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, apperrors.NewNotFoundError("Route").WithMetadata("path", r.URL.Path), 0)
	})

	healthPath := s.config.Monitoring.HealthCheckPath
	if healthPath == "" {
		healthPath = "/health"
	}
	r.Get(healthPath, s.health.Handler())

	if s.metrics != nil && s.config.Monitoring.EnableMetrics {
		metricsPath := s.config.Monitoring.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.Handle(metricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JSONOnly())
		r.Use(middleware.Authenticate(s.verifier, s.logger))
		if s.limiter != nil {
			r.Use(s.limiter.Middleware())
		}
		s.kitchen.Routes(r)
	})

	return r
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background. Bind errors are
// returned directly; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}

	s.logger.Info("Starting API server", zap.String("address", ln.Addr().String()))

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server stopped unexpectedly", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
