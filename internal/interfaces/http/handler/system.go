package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/finmanager/backend/internal/infrastructure/logger"
	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the liveness and health endpoints
type SystemHandler struct {
	BaseHandler
	db          Pinger
	pingTimeout time.Duration
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db, pingTimeout: 3 * time.Second}
}

// Root answers liveness checks
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// Health reports whether the database answers a ping
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: "unhealthy", Database: "disconnected"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "healthy", Database: "connected"})
}
