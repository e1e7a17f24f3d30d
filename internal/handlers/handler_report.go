package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/rostech/erp-backend/internal/middleware"
)

// reportHandler handles HTTP requests for reports and the dashboard.
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportHandler(rs portssvc.ReportingSvcFacade) *reportHandler {
	return &reportHandler{reportingService: rs}
}

// registerReportRoutes registers routes related to reporting.
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly", h.monthlyReport)
		reports.GET("/dashboard", h.dashboard)
		reports.POST("/email", h.emailReport)
	}
}

// monthlyReport godoc
// @Summary Build the monthly report
// @Description Folds sales, installments, safe entries and distribution history for one calendar month
// @Tags reports
// @Produce  json
// @Param   month query int true "Month (1-12)"
// @Param   year query int true "Year"
// @Success 200 {object} domain.MonthlyReport
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportHandler) monthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for MonthlyReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.MonthlyReport(c.Request.Context(), params.Month, params.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build monthly report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// dashboard godoc
// @Summary Get the dashboard summary
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.DashboardStats
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reportingService.DashboardStats(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// emailReport godoc
// @Summary Email the monthly report
// @Tags reports
// @Accept  json
// @Param   request body dto.EmailReportRequest true "Recipient and period"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Outbound mail not configured or delivery failed"
// @Security BearerAuth
// @Router /reports/email [post]
func (h *reportHandler) emailReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EmailReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.reportingService.SendMonthlyReport(c.Request.Context(), req.Address, req.Month, req.Year); err != nil {
		respondServiceError(c, logger, err, "Failed to send report email")
		return
	}
	c.Status(http.StatusAccepted)
}
