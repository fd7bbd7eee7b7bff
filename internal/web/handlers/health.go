package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stripe2qbo/console/internal/web/dto"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health reports that the server is up.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Version: h.version})
}
