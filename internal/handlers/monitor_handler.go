// internal/handlers/monitor_handler.go

package handlers

import (
	"github.com/gin-gonic/gin"

	"space/internal/monitor"
)

type MonitorHandler struct {
	monitor *monitor.Monitor
}

func NewMonitorHandler(m *monitor.Monitor) *MonitorHandler {
	return &MonitorHandler{monitor: m}
}

// Snapshot 最近一次家电统计，还没采样过时立即采样
func (h *MonitorHandler) Snapshot(c *gin.Context) {
	snap := h.monitor.Latest()
	if snap.Timestamp.IsZero() {
		snap = h.monitor.Sample()
	}
	ok(c, "success", snap)
}
