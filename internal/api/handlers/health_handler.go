package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"johnsonShop/internal/api/response"
)

type HealthHandler struct {
	started time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// CheckHealth GET /api/v1/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
