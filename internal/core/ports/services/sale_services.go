package services

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/dto"
)

// SaleSvcFacade defines the sale operations exposed to transport.
type SaleSvcFacade interface {
	// CreateSale issues an invoice. For INSTALLMENT sales it generates the
	// schedule and returns it alongside the sale; the persisted effects
	// (sale, installments, down-payment posting, stock decrement, customer
	// balance increment) are atomic.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, []domain.Installment, error)
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.SaleReportRow, error)
}
