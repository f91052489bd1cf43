// Package server exposes the query pipeline over HTTP with gin.
//
// Routes:
//
//	GET  /health   liveness
//	POST /chat     free text → translator → engine → JSON
//	GET  /metrics  Prometheus exposition (optional)
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/hrquery/engine"
	"github.com/spektr-org/hrquery/translator"
)

// Server wires a Translator and a Storage behind a gin router.
// It holds no per-request state; every /chat call acquires its own session.
type Server struct {
	translator  translator.Translator
	storage     engine.Storage
	logger      *zap.Logger
	metrics     *Metrics
	metricsPath string
	router      *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger routes access logs and engine diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics mounts a Prometheus endpoint at path backed by m.
func WithMetrics(m *Metrics, path string) Option {
	return func(s *Server) {
		s.metrics = m
		s.metricsPath = path
	}
}

// New builds the router. The gin mode is process-global and is left to the
// caller (gin.SetMode).
func New(t translator.Translator, storage engine.Storage, opts ...Option) *Server {
	s := &Server{
		translator: t,
		storage:    storage,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.POST("/chat", s.handleChat)
	if s.metrics != nil && s.metricsPath != "" {
		r.GET(s.metricsPath, gin.WrapH(s.metrics.Handler()))
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then drains in-flight requests for
// at most grace.
func (s *Server) Run(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()

		s.logger.Info("shutting down", zap.Duration("grace", grace))
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
