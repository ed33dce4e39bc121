package server

import (
	"context"
	"net/http"
	"time"

	"github.com/avolkov/geotrack/internal/config"
	"github.com/avolkov/geotrack/internal/handler"
	"github.com/avolkov/geotrack/internal/middleware"
	"github.com/avolkov/geotrack/internal/ratelimit"
	"github.com/avolkov/geotrack/internal/repository"
	"github.com/avolkov/geotrack/internal/service"
	"github.com/avolkov/geotrack/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type DBPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router          *gin.Engine
	config          *config.Config
	db              DBPinger
	limiter         ratelimit.Limiter
	errorSink       *service.ErrorSink
	locationHandler *handler.LocationHandler
	logger          zerolog.Logger
	httpServer      *http.Server
}

func New(cfg *config.Config, postgres *storage.Postgres, redis *storage.RedisClient, logger zerolog.Logger) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	locationRepo := repository.NewLocationRepository(postgres)
	errorLogRepo := repository.NewErrorLogRepository(postgres)

	errorSink := service.NewErrorSink(errorLogRepo, logger)
	locationService := service.NewLocationService(locationRepo, errorSink, logger)
	locationHandler := handler.NewLocationHandler(locationService, logger)

	limiter := ratelimit.NewLimiter(redis, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())

	s := &Server{
		router:          router,
		config:          cfg,
		db:              postgres,
		limiter:         limiter,
		errorSink:       errorSink,
		locationHandler: locationHandler,
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery(s.errorSink, s.logger))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Metrics())
}

func (s *Server) setupRoutes() {
	// Gate order matters: content-type check, then rate limit, then handler
	s.router.POST("/save_location",
		middleware.RequireJSON(),
		middleware.RateLimit(s.limiter),
		s.locationHandler.Save,
	)

	s.router.GET("/statistics", s.locationHandler.Statistics)
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Liveness probe against the store. Failures are answered with the ping
// error detail but never routed to the error sink, so a dead database
// cannot amplify into error-log write attempts.
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		s.logger.Error().Err(err).Msg("database health check failed")

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	s.logger.Info().
		Str("addr", addr).
		Str("environment", s.config.Server.Environment).
		Msg("starting geotrack server")

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
