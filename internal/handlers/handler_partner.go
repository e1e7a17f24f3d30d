package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/rostech/erp-backend/internal/middleware"
)

// partnerHandler handles HTTP requests for partners and profit distribution.
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func newPartnerHandler(ps portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{partnerService: ps}
}

// registerPartnerRoutes registers routes related to partners.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	h := newPartnerHandler(partnerService)

	partners := rg.Group("/partners")
	{
		partners.POST("", h.createPartner)
		partners.GET("", h.listPartners)
		partners.PUT("/:id", h.updatePartner)
		partners.GET("/history", h.history)
		partners.GET("/profit", h.profitSummary)
		partners.POST("/distribute", h.distribute)
		partners.POST("/withdraw", h.withdraw)
	}
}

// createPartner godoc
// @Summary Register a profit-sharing partner
// @Description The combined share percentage across all partners must stay at or below 100
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   partner body dto.CreatePartnerRequest true "Partner details"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} map[string]string "Invalid share or share sum exceeded"
// @Security BearerAuth
// @Router /partners [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePartner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create partner")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// listPartners godoc
// @Summary List all partners
// @Tags partners
// @Produce  json
// @Success 200 {array} dto.PartnerResponse
// @Security BearerAuth
// @Router /partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	partners, err := h.partnerService.ListPartners(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPartnerResponse(partners))
}

// updatePartner godoc
// @Summary Update a partner's name or share
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   id path string true "Partner ID"
// @Param   partner body dto.UpdatePartnerRequest true "Fields to update"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Security BearerAuth
// @Router /partners/{id} [put]
func (h *partnerHandler) updatePartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePartner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// history godoc
// @Summary List the distribution audit trail
// @Tags partners
// @Produce  json
// @Success 200 {array} dto.DistributionRecordResponse
// @Security BearerAuth
// @Router /partners/history [get]
func (h *partnerHandler) history(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.partnerService.History(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list distribution history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDistributionRecordResponse(records))
}

// profitSummary godoc
// @Summary Get the distributable profit base
// @Description Total income minus operating expense with payouts excluded, floored at zero
// @Tags partners
// @Produce  json
// @Success 200 {object} dto.ProfitSummaryResponse
// @Security BearerAuth
// @Router /partners/profit [get]
func (h *partnerHandler) profitSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.partnerService.ProfitSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute profit summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// distribute godoc
// @Summary Distribute profit across partners
// @Description Credits every partner's wallet with its percentage share. No safe entry is posted; cash leaves the safe only on withdrawal.
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   distribution body dto.DistributeRequest true "Amount to distribute"
// @Success 200 {array} dto.DistributionRecordResponse
// @Failure 400 {object} map[string]string "Invalid amount or no partners"
// @Security BearerAuth
// @Router /partners/distribute [post]
func (h *partnerHandler) distribute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Distribute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.partnerService.Distribute(c.Request.Context(), req.Amount, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to distribute profit")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDistributionRecordResponse(records))
}

// withdraw godoc
// @Summary Pay out part of a partner's entitlement
// @Description Lowers the wallet, raises total withdrawn and posts the safe withdrawal entry atomically
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Failure 409 {object} map[string]string "Withdrawal exceeds the current balance"
// @Security BearerAuth
// @Router /partners/withdraw [post]
func (h *partnerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	partner, err := h.partnerService.Withdraw(c.Request.Context(), req.PartnerID, req.Amount, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to withdraw")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}
