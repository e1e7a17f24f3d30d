package repositories

import (
	"context"
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
)

// InstallmentRepositoryFacade defines persistence operations for installments.
type InstallmentRepositoryFacade interface {
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)
	ListInstallments(ctx context.Context) ([]domain.Installment, error)
	ListInstallmentsBySaleID(ctx context.Context, saleID string) ([]domain.Installment, error)
	ListInstallmentsByPeriod(ctx context.Context, month int, year int) ([]domain.Installment, error)
	// CollectInstallment marks the installment PAID, posts the income entry
	// to the safe and decrements the customer's outstanding balance (floored
	// at zero) in a single database transaction. It fails with
	// apperrors.ErrConflict if the installment is no longer PENDING, which
	// makes the double-submit race safe even past the service-level check.
	CollectInstallment(ctx context.Context, installmentID string, customerID string, entry domain.Transaction) error
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}
