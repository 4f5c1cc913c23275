package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/reporting"
	"almacen/internal/infrastructure/export"
	"almacen/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves generated reports and the scheduler controls.
type ReportsHandler struct {
	*BaseHandler
	repo      reporting.Repository
	scheduler *reporting.Scheduler
	excel     *export.ExcelWriter

	// runCtx is the application lifetime context the poller runs under;
	// request contexts would cancel the loop when the request ends.
	runCtx context.Context
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(
	base *BaseHandler,
	repo reporting.Repository,
	scheduler *reporting.Scheduler,
	excel *export.ExcelWriter,
	runCtx context.Context,
) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		repo:        repo,
		scheduler:   scheduler,
		excel:       excel,
		runCtx:      runCtx,
	}
}

// List handles GET /reports
func (h *ReportsHandler) List(c *gin.Context) {
	reports, err := h.repo.ListReports(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	summaries := make([]dto.ReportSummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, dto.FromReport(report))
	}
	h.OK(c, dto.ListResponse{Items: summaries, Count: len(summaries)})
}

// Get handles GET /reports/:id
func (h *ReportsHandler) Get(c *gin.Context) {
	reportID := c.Param("id")
	if reportID == "" {
		h.Error(c, apperror.NewValidation("report id is required"))
		return
	}

	report, err := h.repo.GetReport(c.Request.Context(), reportID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Export handles GET /reports/:id/export
func (h *ReportsHandler) Export(c *gin.Context) {
	reportID := c.Param("id")
	if reportID == "" {
		h.Error(c, apperror.NewValidation("report id is required"))
		return
	}

	report, err := h.repo.GetReport(c.Request.Context(), reportID)
	if err != nil {
		h.Error(c, err)
		return
	}

	view := c.Query("view")
	switch view {
	case "", export.ViewGeneral, export.ViewBySupplier, export.ViewPerOrder:
	default:
		h.Error(c, apperror.NewValidation("unknown report view").WithDetail("view", view))
		return
	}

	var buf bytes.Buffer
	if err := h.excel.WriteView(&buf, report, view); err != nil {
		h.Error(c, apperror.NewInternal(fmt.Errorf("export report: %w", err)))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", h.excel.Filename(report)))
	c.Data(http.StatusOK, h.excel.ContentType(), buf.Bytes())
}

// GenerateManual handles POST /reports/manual
func (h *ReportsHandler) GenerateManual(c *gin.Context) {
	report, err := h.scheduler.GenerateManualReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ManualReportResponse{Generated: report != nil}
	if report != nil {
		summary := dto.FromReport(report)
		resp.Report = &summary
	}
	h.OK(c, resp)
}

// Backfill handles POST /reports/backfill
func (h *ReportsHandler) Backfill(c *gin.Context) {
	result := h.scheduler.RunHistoricalBackfill(c.Request.Context())

	h.OK(c, dto.BackfillResponse{
		Success:          result.Success,
		ReportsGenerated: result.ReportsGenerated,
		Errors:           result.Errors,
	})
}

// Status handles GET /scheduler/status
func (h *ReportsHandler) Status(c *gin.Context) {
	h.OK(c, dto.FromSchedulerStatus(h.scheduler.Status()))
}

// Start handles POST /scheduler/start
func (h *ReportsHandler) Start(c *gin.Context) {
	h.scheduler.Start(h.runCtx)
	h.OK(c, dto.FromSchedulerStatus(h.scheduler.Status()))
}

// Stop handles POST /scheduler/stop
func (h *ReportsHandler) Stop(c *gin.Context) {
	h.scheduler.Stop()
	h.OK(c, dto.FromSchedulerStatus(h.scheduler.Status()))
}
