package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stripe2qbo/console/internal/store"
	"github.com/stripe2qbo/console/internal/web/dto"
)

// StatusHandler reports the live screen state as JSON.
type StatusHandler struct {
	store    *store.Store
	settings *SettingsHandler
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(st *store.Store, settings *SettingsHandler) *StatusHandler {
	return &StatusHandler{store: st, settings: settings}
}

// Status returns the sync store selectors and the settings submitting flag.
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{
		IsSyncing:          h.store.IsSyncing(),
		SyncStatus:         h.store.SyncStatus(),
		TransactionCount:   h.store.TransactionCount(),
		SettingsSubmitting: h.settings.IsSubmitting(),
	})
}
