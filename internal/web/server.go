// Package web assembles the console HTTP server: screen routes, JSON API
// routes, and the middleware stack.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stripe2qbo/console/internal/settings"
	"github.com/stripe2qbo/console/internal/storage"
	"github.com/stripe2qbo/console/internal/store"
	"github.com/stripe2qbo/console/internal/web/handlers"
	"github.com/stripe2qbo/console/internal/web/middleware"
	"github.com/stripe2qbo/console/internal/web/views"
)

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Environment    string
	Version        string
}

// Deps are the collaborators the handlers need.
type Deps struct {
	Store    *store.Store
	Importer handlers.ImportRunner
	Backend  settings.API
	History  storage.Repository
	Logger   *slog.Logger
}

// Server is the console HTTP server.
type Server struct {
	config     Config
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a Server with middleware and routes configured.
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(deps.Logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	engine.SetHTMLTemplate(views.Templates())

	s := &Server{
		config: cfg,
		engine: engine,
		logger: deps.Logger,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.setupRoutes(deps)
	return s
}

func (s *Server) setupRoutes(deps Deps) {
	importHandler := handlers.NewImportHandler(deps.Store, deps.Importer, deps.Logger)
	settingsHandler := handlers.NewSettingsHandler(deps.Backend, deps.Logger)
	historyHandler := handlers.NewHistoryHandler(deps.History, deps.Logger)
	runsHandler := handlers.NewRunsHandler(deps.History, deps.Logger)
	statusHandler := handlers.NewStatusHandler(deps.Store, settingsHandler)
	healthHandler := handlers.NewHealthHandler(s.config.Version)

	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/import")
	})
	s.engine.GET("/static/app.css", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/css; charset=utf-8", views.Stylesheet())
	})

	s.engine.GET("/import", importHandler.Show)
	s.engine.POST("/import", importHandler.Run)
	s.engine.GET("/settings", settingsHandler.Show)
	s.engine.POST("/settings", settingsHandler.Save)
	s.engine.GET("/history", historyHandler.Show)

	api := s.engine.Group("/api")
	{
		api.GET("/status", statusHandler.Status)
		api.GET("/runs", runsHandler.List)
	}

	s.engine.GET("/health", healthHandler.Health)
}

// Start begins listening and blocks until Shutdown or failure.
func (s *Server) Start() error {
	s.logger.Info("starting console server", "addr", s.httpServer.Addr, "environment", s.config.Environment)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down console server")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.engine
}
