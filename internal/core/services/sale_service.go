package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
)

var (
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrDownPaymentTooLarge = errors.New("down payment exceeds the sale total")
	ErrTermRequired        = errors.New("installment sales require a term from the allowed menu")
)

// saleService creates invoices and generates installment schedules.
type saleService struct {
	BaseService
	saleRepo     portsrepo.SaleRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
}

// NewSaleService creates a new SaleService.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale validates the request, freezes the product price, generates the
// installment schedule for financed sales and hands everything to the
// repository as one atomic unit: sale + installments + down-payment posting
// + stock decrement + customer balance increment.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, []domain.Installment, error) {
	logger := s.GetLogger(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.CustomerID)
		}
		return nil, nil, fmt.Errorf("failed to fetch customer %s: %w", req.CustomerID, err)
	}

	product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, req.ProductID)
		}
		return nil, nil, fmt.Errorf("failed to fetch product %s: %w", req.ProductID, err)
	}
	if product.Stock <= 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
	}

	if req.DownPayment.IsNegative() {
		return nil, nil, fmt.Errorf("%w: down payment must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	method := domain.PaymentMethod(req.PaymentMethod)
	totalAmount := product.SellPrice

	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		CustomerID:    customer.CustomerID,
		ProductID:     product.ProductID,
		PaymentMethod: method,
		TotalAmount:   totalAmount,
		DownPayment:   req.DownPayment,
		SaleDate:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	var installments []domain.Installment
	switch method {
	case domain.PaymentCash:
		// A cash sale is settled in full at the till.
		sale.DownPayment = totalAmount
		sale.InstallmentsCount = 0
	case domain.PaymentInstallment:
		if !domain.IsAllowedTerm(req.TermMonths) {
			return nil, nil, fmt.Errorf("%w: %d months", ErrTermRequired, req.TermMonths)
		}
		if req.DownPayment.GreaterThan(totalAmount) {
			return nil, nil, fmt.Errorf("%w: %s > %s", ErrDownPaymentTooLarge, req.DownPayment, totalAmount)
		}
		lines, err := domain.GenerateSchedule(sale.FinancedAmount(), req.TermMonths, now)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		sale.InstallmentsCount = req.TermMonths
		installments = make([]domain.Installment, len(lines))
		for i, line := range lines {
			installments[i] = domain.Installment{
				InstallmentID: uuid.NewString(),
				SaleID:        sale.SaleID,
				DueDate:       line.DueDate,
				Amount:        line.Amount,
				Status:        domain.InstallmentPending,
				AuditFields:   sale.AuditFields,
			}
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	var downPaymentEntry *domain.Transaction
	if sale.DownPayment.GreaterThan(decimal.Zero) {
		downPaymentEntry = &domain.Transaction{
			TransactionID: uuid.NewString(),
			Type:          domain.TransactionIncome,
			Category:      domain.CategorySales,
			Amount:        sale.DownPayment,
			Date:          now,
			Description:   fmt.Sprintf("Invoice %s - %s", sale.SaleID, product.Name),
			AuditFields:   sale.AuditFields,
		}
	}

	if err := s.saleRepo.SaveSale(ctx, sale, installments, downPaymentEntry); err != nil {
		s.LogError(ctx, err, "Failed to save sale", slog.String("sale_id", sale.SaleID))
		return nil, nil, fmt.Errorf("failed to save sale: %w", err)
	}

	logger.Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("payment_method", string(method)),
		slog.String("total", totalAmount.String()),
		slog.Int("installments", sale.InstallmentsCount),
	)
	return &sale, installments, nil
}

// GetSaleByID retrieves a single sale.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find sale", slog.String("sale_id", saleID))
		}
		return nil, err
	}
	return sale, nil
}

// ListSales returns all sales with customer and product names resolved for
// display. A sale whose references are dangling keeps its identifiers and
// gets placeholder names; listing never fails on a single bad record.
func (s *saleService) ListSales(ctx context.Context) ([]domain.SaleReportRow, error) {
	sales, err := s.saleRepo.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	customerNames := make(map[string]string, len(customers))
	for _, c := range customers {
		customerNames[c.CustomerID] = c.Name
	}
	productNames := make(map[string]string, len(products))
	for _, p := range products {
		productNames[p.ProductID] = p.Name
	}

	rows := make([]domain.SaleReportRow, len(sales))
	for i, sale := range sales {
		rows[i] = domain.SaleReportRow{
			Sale:         sale,
			CustomerName: nameOrPlaceholder(customerNames, sale.CustomerID, domain.UnknownCustomerName),
			ProductName:  nameOrPlaceholder(productNames, sale.ProductID, domain.UnknownProductName),
		}
	}
	return rows, nil
}

func nameOrPlaceholder(names map[string]string, id string, placeholder string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return placeholder
}
