package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stripe2qbo/console/internal/storage"
)

const historyPageSize = 50

// HistoryHandler serves the import history screen.
type HistoryHandler struct {
	repo   storage.Repository
	logger *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(repo storage.Repository, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, logger: logger}
}

// Show renders the most recent import runs.
func (h *HistoryHandler) Show(c *gin.Context) {
	runs, err := h.repo.RecentImportRuns(historyPageSize)
	if err != nil {
		h.logger.Error("loading import history", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Active":  "history",
			"Message": "could not load import history",
		})
		return
	}

	c.HTML(http.StatusOK, "history.html", gin.H{
		"Active": "history",
		"Runs":   runs,
	})
}
