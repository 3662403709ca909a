package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"examwatch/pkg/config"
	"examwatch/pkg/handlers"
	"examwatch/pkg/logger"
	"examwatch/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server constants
const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second
)

// Config holds HTTP server configuration
type Config struct {
	Address string
	Port    int
	Config  *config.Config
}

// HTTPServer serves the read-only status API.
type HTTPServer struct {
	server     *http.Server
	router     *gin.Engine
	config     *Config
	handlerSvc *handlers.HandlerService
}

// NewHTTPServer creates a new HTTP server instance. poller and hist may be nil.
func NewHTTPServer(cfg *Config, poller handlers.StatusProvider, hist handlers.HistoryReader) *HTTPServer {
	logger.Info("Initializing HTTP server", zap.String("address", cfg.Address), zap.Int("port", cfg.Port))

	if cfg.Config != nil && cfg.Config.App != nil && !cfg.Config.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &HTTPServer{
		router:     gin.New(),
		config:     cfg,
		handlerSvc: handlers.NewHandlerService(cfg.Config, poller, hist),
	}
	s.setupRoutes()

	addr := net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port))
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}

	logger.Info("HTTP server initialized", zap.String("listen_addr", addr))
	return s
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) setupRoutes() {
	s.router.Use(
		middleware.RequestID(),
		middleware.GinZapLogger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders: []string{middleware.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}),
	)

	s.router.GET("/health", s.handlerSvc.HealthCheck)

	api := s.router.Group("/api/v1")
	api.GET("/status", s.handlerSvc.GetStatus)
	api.GET("/config", s.handlerSvc.GetAppConfig)
	api.GET("/cycles", s.handlerSvc.GetCycles)

	logger.Info("HTTP routes configured")
}

// Start serves until Shutdown. It returns nil on a clean shutdown.
func (s *HTTPServer) Start() error {
	logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	return nil
}
