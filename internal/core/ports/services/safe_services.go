package services

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// SafeSvcFacade defines the cash-ledger operations exposed to transport and
// to the profit distribution engine.
type SafeSvcFacade interface {
	// PostTransaction appends a manual safe entry. The reserved
	// "profit distribution" category is rejected here.
	PostTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	// Balance is sum(INCOME) - sum(EXPENSE) - sum(WITHDRAWAL).
	Balance(ctx context.Context) (decimal.Decimal, error)
	// BalanceExcluding is Balance computed while skipping entries whose
	// category is in the given set.
	BalanceExcluding(ctx context.Context, categories []string) (decimal.Decimal, error)
	// OperatingProfit returns total income, operating expense (payout
	// entries excluded) and their difference floored at zero.
	OperatingProfit(ctx context.Context) (income, expense, net decimal.Decimal, err error)
}
