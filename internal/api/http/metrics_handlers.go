package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	Timestamp         time.Time `json:"timestamp"`
	TotalRequests     int64     `json:"total_requests"`
	TotalInvocations  int64     `json:"total_invocations"`
	ErrorRate         float64   `json:"error_rate"`
	ActiveConnections int64     `json:"active_connections"`
	UptimeSeconds     float64   `json:"uptime_seconds"`
}

// GetMetricsSummary returns a JSON digest of the prometheus counters
func (h *Handlers) GetMetricsSummary(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}

	snap := h.metrics.Snapshot()
	summary := MetricsSummary{
		Timestamp:         time.Now(),
		TotalRequests:     snap.TotalRequests,
		TotalInvocations:  snap.TotalInvocations,
		ActiveConnections: snap.ActiveConnections,
		UptimeSeconds:     snap.UptimeSeconds,
	}
	if snap.TotalInvocations > 0 {
		summary.ErrorRate = float64(snap.FailedInvocations) / float64(snap.TotalInvocations)
	}

	c.JSON(http.StatusOK, summary)
}
