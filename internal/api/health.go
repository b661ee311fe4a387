package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on cache connectivity).
type HealthHandler struct {
	ping func(ctx context.Context) error
}

// NewHealthHandler constructs a HealthHandler. ping checks the cache
// backend and may be nil when no cache is configured.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if ping succeeds, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// @Summary      Readiness probe
	// @Description  Returns ready if the cache backend is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := h.ping(ctx); err != nil {
				c.JSON(503, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
