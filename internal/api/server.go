// Package api exposes the decision-support engines over HTTP. The engines
// themselves define no wire format; this layer is the boundary collaborator
// that the EMR front end and the protocol-compliance checker talk to.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clinical-dss-server/internal/domain"
	"github.com/clinical-dss-server/internal/service"
)

// Server represents the HTTP server.
type Server struct {
	logger      *logrus.Logger
	config      *domain.Config
	assessments *service.AssessmentService
	router      *gin.Engine
	server      *http.Server
}

// NewServer creates a new HTTP server around the assessment service.
func NewServer(logger *logrus.Logger, cfg *domain.Config, assessments *service.AssessmentService) *Server {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogMiddleware(logger))
	router.Use(corsMiddleware())
	if cfg.RateLimit.Enabled {
		router.Use(rateLimitMiddleware(cfg.RateLimit))
	}

	s := &Server{
		logger:      logger,
		config:      cfg,
		assessments: assessments,
		router:      router,
	}
	s.setupRoutes()

	return s
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.logger.WithField("addr", addr).Info("HTTP server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Router exposes the configured handler, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/differential", s.handleDifferential)
		v1.POST("/differential/update", s.handleDifferentialUpdate)
		v1.POST("/differential/distinguish", s.handleDistinguish)
		v1.POST("/redflags", s.handleRedFlags)
		v1.POST("/assess", s.handleAssess)
	}
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"cache":     s.assessments.CacheStats(),
	})
}
