// Package api exposes the reconciliation service over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ledgerlens/reconcile/internal/api/middleware"
	"github.com/ledgerlens/reconcile/internal/application/service"
	"github.com/ledgerlens/reconcile/internal/infrastructure/config"
	"github.com/ledgerlens/reconcile/internal/infrastructure/storage"
)

// Server is the HTTP API server.
type Server struct {
	cfg        config.ServerConfig
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	svc        *service.ReconService
}

// NewServer creates a new API server.
func NewServer(cfg config.ServerConfig, repo storage.Repository, svc *service.ReconService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
		repo:   repo,
		svc:    svc,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check outside the /api prefix, for load balancers
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/reconcile", s.handleReconcile)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}
}

// Handler returns the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	s.logger.Info("api server listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
