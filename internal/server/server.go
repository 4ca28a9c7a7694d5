package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutrition-admin/config"
	"nutrition-admin/internal/handler"
	"nutrition-admin/internal/metrics"
	"nutrition-admin/internal/middleware"
	"nutrition-admin/internal/ratelimit"
	"nutrition-admin/internal/services"
	"nutrition-admin/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Health *handler.HealthHandler
	User   *handler.UserHandler
	Chat   *handler.ChatHandler
	Event  *handler.EventHandler
	Stats  *handler.StatsHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	if l == nil {
		l = logger.NewNop()
	}

	engine := gin.New()

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SetupRoutes registers the middleware chain and every route. limiter may be
// nil to disable rate limiting.
func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter ratelimit.Limiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSOrigins))
	s.engine.Use(metrics.Middleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.Recovery(s.logger))

	s.engine.NoRoute(middleware.NotFound())

	s.engine.GET("/health", handlers.Health.Live)
	s.engine.GET("/health/ready", handlers.Health.Ready)
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := s.engine.Group("/api")
	api.Use(middleware.AuthMiddleware(authService))
	if limiter != nil {
		api.Use(middleware.RateLimitMiddleware(limiter, s.logger))
	}
	api.Use(middleware.QueryTimeout(s.config.DBQueryTimeout))
	{
		api.GET("/users", handlers.User.List)
		api.GET("/users/recent", handlers.User.Recent)
		api.GET("/users/:chatId", handlers.User.Get)
		api.GET("/chat/:sessionId", handlers.Chat.History)
		api.GET("/events/:chatId", handlers.Event.List)
		api.GET("/stats", handlers.Stats.Get)
	}
}

func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		s.logger.Errorf("Error in starting the server: %s", err)
		return err
	case <-quit:
	}

	s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		return err
	}

	s.logger.Infof("Server stopped gracefully")

	return nil
}
