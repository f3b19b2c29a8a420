package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/domain/models"
)

const defaultReportLimit = 12

// ReportHistory reads stored weekly reports.
type ReportHistory interface {
	LatestSummaryReports(ctx context.Context, limit int64) ([]models.SummaryReport, error)
}

// ReportsHandler serves the stored weekly reports.
type ReportsHandler struct {
	history ReportHistory
	logger  *zap.Logger
}

// NewReportsHandler constructs the weekly report routes adapter.
func NewReportsHandler(history ReportHistory, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{history: history, logger: logger}
}

// Latest returns the newest weekly reports, limit query parameter included.
func (h *ReportsHandler) Latest(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultReportLimit)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	reports, err := h.history.LatestSummaryReports(c.Request.Context(), int64(limit))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
