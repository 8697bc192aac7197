package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bot-detect/internal/db"
)

// HealthHandler expone el estado de conectividad con el storage.
type HealthHandler struct {
	pinger db.Pinger
}

func NewHealthHandler(pinger db.Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Check maneja GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
