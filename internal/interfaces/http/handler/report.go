package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /admin/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	result, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Blocks handles GET /admin/reports/blocks
func (h *ReportHandler) Blocks(c *gin.Context) {
	var req report.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reportService.BlockPerformance(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Collection handles GET /admin/reports/collection
func (h *ReportHandler) Collection(c *gin.Context) {
	var req report.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.reportService.Collection(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MyDashboard handles GET /my/dashboard for the authenticated homeowner
func (h *ReportHandler) MyDashboard(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	result, err := h.reportService.HomeownerDashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
