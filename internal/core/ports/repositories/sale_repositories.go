package repositories

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
)

// SaleRepositoryFacade defines persistence operations for sales.
type SaleRepositoryFacade interface {
	// SaveSale persists a sale atomically with all of its side effects: the
	// generated installments, the down-payment safe entry (nil for a zero
	// down payment), the product stock decrement and the customer's
	// outstanding-balance increment. Either every effect applies or none do.
	SaveSale(ctx context.Context, sale domain.Sale, installments []domain.Installment, downPaymentEntry *domain.Transaction) error
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	ListSalesByPeriod(ctx context.Context, month int, year int) ([]domain.Sale, error)
}
