package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/rostech/erp-backend/internal/middleware"
)

// safeHandler handles HTTP requests related to the cash ledger.
type safeHandler struct {
	safeService portssvc.SafeSvcFacade
}

func newSafeHandler(ss portssvc.SafeSvcFacade) *safeHandler {
	return &safeHandler{safeService: ss}
}

// registerSafeRoutes registers routes related to the safe. There are no
// update or delete routes; the ledger is append-only.
func registerSafeRoutes(rg *gin.RouterGroup, safeService portssvc.SafeSvcFacade) {
	h := newSafeHandler(safeService)

	safe := rg.Group("/safe")
	{
		safe.GET("", h.getSafe)
		safe.POST("/transaction", h.postTransaction)
	}
}

// getSafe godoc
// @Summary Get the safe balance and entry list
// @Tags safe
// @Produce  json
// @Success 200 {object} dto.SafeResponse
// @Security BearerAuth
// @Router /safe [get]
func (h *safeHandler) getSafe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.safeService.Balance(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute safe balance")
		return
	}
	entries, err := h.safeService.ListTransactions(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list safe entries")
		return
	}

	c.JSON(http.StatusOK, dto.SafeResponse{
		Balance:      balance,
		Transactions: dto.ToListTransactionResponse(entries),
	})
}

// postTransaction godoc
// @Summary Post a manual safe entry
// @Description Appends an income, expense or withdrawal entry. The "profit distribution" category is reserved for the distribution engine.
// @Tags safe
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateTransactionRequest true "Entry details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or reserved category"
// @Security BearerAuth
// @Router /safe/transaction [post]
func (h *safeHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.safeService.PostTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post safe entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(entry))
}
