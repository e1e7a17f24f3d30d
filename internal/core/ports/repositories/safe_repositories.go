package repositories

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SafeRepositoryFacade defines persistence operations for the cash ledger.
// The ledger is append-only: there is deliberately no update or delete.
type SafeRepositoryFacade interface {
	SaveTransaction(ctx context.Context, entry domain.Transaction) error
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListTransactionsByPeriod(ctx context.Context, month int, year int) ([]domain.Transaction, error)
	// SumByTypeExcludingCategories returns the total posted amount per entry
	// type, skipping entries whose category is in excludedCategories. An
	// empty exclusion set yields the plain per-type totals.
	SumByTypeExcludingCategories(ctx context.Context, excludedCategories []string) (map[domain.TransactionType]decimal.Decimal, error)
}
