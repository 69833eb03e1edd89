package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tagserve/tagserve/internal/artifacts"
	"github.com/tagserve/tagserve/pkg/ports"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router    *gin.Engine
	server    *http.Server
	store     *artifacts.Store
	predictor ports.Predictor
	metrics   ports.MetricsCollector
	logger    *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port      int
	Store     *artifacts.Store
	Predictor ports.Predictor
	Metrics   ports.MetricsCollector
	Logger    *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogger(cfg.Logger, cfg.Metrics))
	router.Use(corsMiddleware())

	s := &Server{
		router:    router,
		store:     cfg.Store,
		predictor: cfg.Predictor,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/", s.handleIndex)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Inference and run reporting
	s.router.POST("/predict", s.handlePredict)
	s.router.GET("/params", s.handleParams)
	s.router.GET("/params/:name", s.handleParam)
	s.router.GET("/performance", s.handlePerformance)
}

// SetupWebSocket adds WebSocket handler to the server
func (s *Server) SetupWebSocket(handler interface {
	HandlePredictStream(*gin.Context)
}) {
	s.router.GET("/predict/stream", handler.HandlePredictStream)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}

// requestLogger is a middleware for request logging and metrics
func requestLogger(logger *zap.Logger, metrics ports.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		if metrics != nil {
			metrics.RecordRequest(path, c.Writer.Status())
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()))
	}
}
