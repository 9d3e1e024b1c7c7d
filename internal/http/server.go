package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	otelmetric "go.opentelemetry.io/otel/metric"

	analyticsHTTP "github.com/tehnczon/projectecho/internal/analytics/http"
	"github.com/tehnczon/projectecho/internal/httputil"
	identityHTTP "github.com/tehnczon/projectecho/internal/identity/http"
	"github.com/tehnczon/projectecho/internal/metrics"
	surveyHTTP "github.com/tehnczon/projectecho/internal/survey/http"
)

// ServerConfig holds API server settings.
type ServerConfig struct {
	Host                    string
	Port                    int
	CORSEnabled             bool
	CORSAllowOrigins        string
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
	MetricsNamespace        string
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server with all routes and middleware wired.
// meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg ServerConfig,
	logger *slog.Logger,
	identityHandler *identityHTTP.IdentityHandler,
	recordHandler *surveyHTTP.RecordHandler,
	summaryHandler *analyticsHTTP.SummaryHandler,
	meterProvider otelmetric.MeterProvider,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	// Health and readiness endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := router.Group("/v1")
	{
		// The submission endpoint is unauthenticated; rate limit it per IP.
		identities := v1.Group("/identities")
		if cfg.RateLimitEnabled {
			identities.Use(SubmissionRateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
		}
		identities.POST("", identityHandler.SubmitHandler)

		v1.POST("/survey-records", recordHandler.CreateHandler)
		v1.GET("/survey-records/:id", recordHandler.GetHandler)

		v1.GET("/analytics/summary", summaryHandler.GetHandler)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.ErrorResponse{Error: "not_found"})
	})

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting api server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down api server")
	return s.server.Shutdown(ctx)
}
