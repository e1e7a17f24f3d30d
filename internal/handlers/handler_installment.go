package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/rostech/erp-backend/internal/middleware"
)

// installmentHandler handles HTTP requests related to installments.
type installmentHandler struct {
	installmentService portssvc.InstallmentSvcFacade
}

func newInstallmentHandler(is portssvc.InstallmentSvcFacade) *installmentHandler {
	return &installmentHandler{installmentService: is}
}

// registerInstallmentRoutes registers routes related to installments.
func registerInstallmentRoutes(rg *gin.RouterGroup, installmentService portssvc.InstallmentSvcFacade) {
	h := newInstallmentHandler(installmentService)

	installments := rg.Group("/installments")
	{
		installments.GET("", h.listInstallments)
		installments.GET("/overdue", h.listOverdue)
		installments.GET("/sale/:saleID", h.listBySale)
		installments.POST("/:id/collect", h.collect)
	}
}

// listInstallments godoc
// @Summary List all installments
// @Description Returns installments with the derived display status (OVERDUE when pending and past due)
// @Tags installments
// @Produce  json
// @Success 200 {array} dto.InstallmentResponse
// @Security BearerAuth
// @Router /installments [get]
func (h *installmentHandler) listInstallments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.installmentService.ListInstallments(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInstallmentReportResponse(rows))
}

// listOverdue godoc
// @Summary List overdue installments
// @Tags installments
// @Produce  json
// @Success 200 {array} dto.InstallmentResponse
// @Security BearerAuth
// @Router /installments/overdue [get]
func (h *installmentHandler) listOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.installmentService.ListOverdue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list overdue installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInstallmentReportResponse(rows))
}

// listBySale godoc
// @Summary List one sale's installment schedule
// @Tags installments
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Success 200 {array} dto.InstallmentResponse
// @Security BearerAuth
// @Router /installments/sale/{saleID} [get]
func (h *installmentHandler) listBySale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now().UTC()
	installments, err := h.installmentService.ListBySale(c.Request.Context(), c.Param("saleID"), now)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list installments for sale")
		return
	}

	resp := make([]dto.InstallmentResponse, len(installments))
	for i := range installments {
		resp[i] = dto.ToInstallmentResponse(&installments[i], now)
	}
	c.JSON(http.StatusOK, resp)
}

// collect godoc
// @Summary Collect a pending installment
// @Description Marks the installment paid, posts the income to the safe and lowers the customer's balance. Collecting twice fails with 409 and posts nothing.
// @Tags installments
// @Produce  json
// @Param   id path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 409 {object} map[string]string "Installment already collected"
// @Security BearerAuth
// @Router /installments/{id}/collect [post]
func (h *installmentHandler) collect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	collectorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	installment, err := h.installmentService.Collect(c.Request.Context(), c.Param("id"), collectorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to collect installment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment, time.Now().UTC()))
}
