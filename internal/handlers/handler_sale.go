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

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
	}
}

// createSale godoc
// @Summary Issue a new invoice
// @Description Creates a cash or installment sale. Installment sales generate the payment schedule and return it alongside the sale.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.CreateSaleResponse
// @Failure 400 {object} map[string]string "Invalid input or term not in menu"
// @Failure 404 {object} map[string]string "Customer or product not found"
// @Failure 409 {object} map[string]string "Product out of stock"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, installments, err := h.saleService.CreateSale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create sale")
		return
	}

	now := time.Now().UTC()
	resp := dto.CreateSaleResponse{
		Sale:         dto.ToSaleResponse(sale),
		Installments: make([]dto.InstallmentResponse, len(installments)),
	}
	for i := range installments {
		resp.Installments[i] = dto.ToInstallmentResponse(&installments[i], now)
	}
	c.JSON(http.StatusCreated, resp)
}

// listSales godoc
// @Summary List all sales
// @Description Returns sales with customer and product names resolved for display
// @Tags sales
// @Produce  json
// @Success 200 {array} dto.SaleResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.saleService.ListSales(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list sales")
		return
	}

	resp := make([]dto.SaleResponse, len(rows))
	for i := range rows {
		resp[i] = dto.ToSaleReportResponse(&rows[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getSale godoc
// @Summary Get a sale by ID
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}
