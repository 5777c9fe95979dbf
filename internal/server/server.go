package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feedback-collector/backend/config"
	"github.com/feedback-collector/backend/internal/api"
	"github.com/feedback-collector/backend/internal/middleware"
	"github.com/feedback-collector/backend/internal/service"
	"github.com/feedback-collector/backend/internal/types"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.SugaredLogger
}

// New assembles the engine, middleware and routes around an explicitly
// constructed store connection.
func New(cfg *config.Config, db *gorm.DB, logger *zap.SugaredLogger) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger, config.IsDevelopment()))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	feedbackHandler := api.NewFeedbackHandler(service.NewFeedbackService(db), logger)

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", api.HealthCheck)
	feedbackHandler.RegisterRoutes(apiGroup)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, types.MessageResponse{Message: "API endpoint not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ListenAddr(),
			Handler: router,
		},
		logger: logger,
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving and blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	s.logger.Infow("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, waiting at most five seconds.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
