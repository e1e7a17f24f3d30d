package dto

import (
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines a manual safe entry. The reserved
// "profit distribution" category is rejected by the service; only the
// distribution engine may post it.
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE WITHDRAWAL"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

// TransactionResponse defines the data returned for a safe entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
}

// SafeResponse bundles the running balance with the full entry list.
type SafeResponse struct {
	Balance      decimal.Decimal       `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          string(t.Type),
		Category:      t.Category,
		Amount:        t.Amount,
		Date:          t.Date,
		Description:   t.Description,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs.
func ToListTransactionResponse(entries []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(entries))
	for i, t := range entries {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}
