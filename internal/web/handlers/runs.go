package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stripe2qbo/console/internal/storage"
	"github.com/stripe2qbo/console/internal/web/dto"
)

// RunsHandler serves recorded import runs as JSON.
type RunsHandler struct {
	repo   storage.Repository
	logger *slog.Logger
}

// NewRunsHandler creates a RunsHandler.
func NewRunsHandler(repo storage.Repository, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{repo: repo, logger: logger}
}

// List returns the most recent import runs, newest first.
func (h *RunsHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("limit must be a positive integer"))
		return
	}

	runs, err := h.repo.RecentImportRuns(limit)
	if err != nil {
		h.logger.Error("listing import runs", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	resp := dto.ImportRunListResponse{
		Runs:  make([]dto.ImportRunResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, toImportRunResponse(run))
	}
	c.JSON(http.StatusOK, resp)
}

func toImportRunResponse(run storage.ImportRun) dto.ImportRunResponse {
	return dto.ImportRunResponse{
		ID:               run.ID,
		FromDate:         run.FromDate,
		ToDate:           run.ToDate,
		Status:           run.Status,
		TransactionCount: run.TransactionCount,
		Gross:            run.Gross.StringFixed(2),
		Fees:             run.Fees.StringFixed(2),
		ErrorMessage:     run.ErrorMessage,
		StartedAt:        run.StartedAt,
		CompletedAt:      run.CompletedAt,
	}
}
