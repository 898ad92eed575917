package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accademia-digitale/classroom-gateway/internal/services"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	health *services.HealthService
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// RegisterRoutes mounts the probe routes on the engine root.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ping", h.Ping)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}

// Ping answers a bare pong for the simplest of checks.
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness runs the component probes. A degraded report still answers 200
// because the gateway can serve without its cache; only unhealthy is 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	report := h.health.Check(c.Request.Context())

	status := http.StatusOK
	if report.Status == services.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
