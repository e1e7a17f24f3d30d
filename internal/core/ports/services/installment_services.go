package services

import (
	"context"
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
)

// InstallmentSvcFacade defines the installment operations exposed to
// transport, including the payment processor's collect operation.
type InstallmentSvcFacade interface {
	ListInstallments(ctx context.Context, now time.Time) ([]domain.InstallmentReportRow, error)
	ListOverdue(ctx context.Context, now time.Time) ([]domain.InstallmentReportRow, error)
	ListBySale(ctx context.Context, saleID string, now time.Time) ([]domain.Installment, error)
	// Collect transitions a PENDING installment to PAID, posts the safe
	// income entry and lowers the customer's outstanding balance. A second
	// call on the same installment fails with apperrors.ErrConflict and
	// posts nothing.
	Collect(ctx context.Context, installmentID string, collectorUserID string) (*domain.Installment, error)
}
