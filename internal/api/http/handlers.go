package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/monitoring"
)

// Version is reported by the banner and health endpoints
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root handles the banner request
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "HTTP bridge",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":           "healthy",
		"version":          Version,
		"service_registry": h.registry.Stats(),
	}
	if h.metrics != nil {
		resp["runtime"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, resp)
}

// ListCommands lists registered services and their commands
func (h *Handlers) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(),
		"stats":    h.registry.Stats(),
	})
}
