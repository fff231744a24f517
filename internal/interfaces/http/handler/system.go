package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles operational endpoints
type SystemHandler struct {
	appName string
	env     string
	started time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		env:     env,
		started: time.Now(),
	}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"app":    h.appName,
		"env":    h.env,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
