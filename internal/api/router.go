package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/volseason/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig tunes the global middlewares.
type RouterConfig struct {
	RequestTimeout  time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
	MetricsHandler  http.Handler
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds per-request timeout handling.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures the HTML view (/) and API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimit, cfg.RateLimitWindow),
	)

	// ─── Timeout ──────────────────────────────────
	if cfg.RequestTimeout > 0 {
		router.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}

	// ─── Swagger / metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	// ─── HTML view ────────────────────────────────
	router.GET("/", handler.Page)

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/volume/:ticker", handler.GetVolume)
		v1.GET("/volume/:ticker/bars", handler.GetBars)
		v1.GET("/test-access", handler.TestAccess)
	}

	return router
}
