// Package server exposes validation, checking, generation and history over
// HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/cache"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/exercisegen"
	"github.com/abhisek/wordiz/internal/lessons"
	"github.com/abhisek/wordiz/internal/metrics"
	"github.com/abhisek/wordiz/internal/store"
)

// Deps are the collaborators behind the API. Nil LLM-backed fields make the
// matching endpoints answer 503.
type Deps struct {
	History   store.HistoryRepo
	Generator exercisegen.Generator
	GenConfig exercisegen.Config
	Lessons   *lessons.Service
	Cache     cache.Cache
	CacheTTL  time.Duration
	Metrics   *metrics.Metrics
	Log       *zap.Logger

	// Ping reports database health for /api/health.
	Ping    func(ctx context.Context) error
	Version string
}

// Server is the HTTP API.
type Server struct {
	cfg    config.ServerConfig
	deps   Deps
	log    *zap.Logger
	engine *gin.Engine
}

// New builds the router. It does not start listening.
func New(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewMemory()
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = time.Hour
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{cfg: cfg, deps: deps, log: deps.Log.Named("server")}

	r := gin.New()
	r.Use(recovery(s.log))
	r.Use(otelgin.Middleware("wordiz"))
	r.Use(requestLogger(s.log))
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	r.Use(deps.Metrics.GinMiddleware())
	if cfg.RateLimit.RequestsPerSecond > 0 {
		r.Use(newIPLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).middleware())
	}

	s.registerRoutes(r)
	s.engine = r
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", s.health)
	api.POST("/questions/validate", s.validateQuestion)
	api.POST("/wordbank", s.wordBank)
	api.POST("/check", s.check)
	api.POST("/exercises/generate", s.generateExercises)
	api.POST("/lessons/:kind", s.generateLesson)
	api.GET("/history", s.history)
	api.GET("/history/:id", s.sessionDetail)

	if s.deps.Metrics != nil {
		r.GET("/metrics", s.deps.Metrics.Handler())
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "resource not found")
	})
}

// Handler returns the router for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Addr))
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

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
