package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stripe2qbo/console/internal/importer"
	"github.com/stripe2qbo/console/internal/store"
	"github.com/stripe2qbo/console/internal/stripe"
)

// ImportRunner runs one transaction import for a date range.
type ImportRunner interface {
	Run(ctx context.Context, opts stripe.SyncOptions) (importer.Result, error)
}

// ImportHandler serves the import screen and runs imports.
type ImportHandler struct {
	store    *store.Store
	importer ImportRunner
	logger   *slog.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(st *store.Store, imp ImportRunner, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{store: st, importer: imp, logger: logger}
}

// Show renders the import screen from the store's current state.
func (h *ImportHandler) Show(c *gin.Context) {
	c.HTML(http.StatusOK, "import.html", gin.H{
		"Active":       "import",
		"IsSyncing":    h.store.IsSyncing(),
		"SyncStatus":   h.store.SyncStatus(),
		"Transactions": h.store.Transactions(),
		"Error":        c.Query("error"),
		"Imported":     c.Query("imported"),
	})
}

// Run imports the posted date range and redirects back to the screen.
func (h *ImportHandler) Run(c *gin.Context) {
	var opts stripe.SyncOptions
	if err := c.ShouldBind(&opts); err != nil {
		redirectWithError(c, "/import", "invalid form submission")
		return
	}
	if err := opts.Validate(); err != nil {
		redirectWithError(c, "/import", err.Error())
		return
	}

	result, err := h.importer.Run(c.Request.Context(), opts)
	if err != nil {
		h.logger.Error("import failed", "from_date", opts.FromDate, "to_date", opts.ToDate, "error", err)
		redirectWithError(c, "/import", err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, "/import?imported="+strconv.Itoa(result.TransactionCount))
}
