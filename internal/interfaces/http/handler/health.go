package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout bounds the backend probe so a slow store cannot hang the
// readiness endpoint
const readinessTimeout = 5 * time.Second

// ReadinessCheck reports whether a downstream dependency is reachable
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves the operational health endpoints
type HealthHandler struct {
	startedAt time.Time
	check     ReadinessCheck
}

// NewHealthHandler creates a health handler. check may be nil, in which case
// readiness always succeeds.
func NewHealthHandler(check ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		startedAt: time.Now(),
		check:     check,
	}
}

// Health is the liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready is the readiness probe. It reports unhealthy when the commerce
// backend cannot be reached.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.check != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := h.check(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"store":  "error",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"store":  "ok",
	})
}
