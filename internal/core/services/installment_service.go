package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
)

// ErrAlreadyCollected signals a repeated collect on the same installment.
var ErrAlreadyCollected = errors.New("installment has already been collected")

// installmentService reads schedules and processes collections.
type installmentService struct {
	BaseService
	installmentRepo portsrepo.InstallmentRepositoryFacade
	saleRepo        portsrepo.SaleRepositoryFacade
	customerRepo    portsrepo.CustomerRepositoryFacade
}

// NewInstallmentService creates a new InstallmentService.
func NewInstallmentService(installmentRepo portsrepo.InstallmentRepositoryFacade, saleRepo portsrepo.SaleRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portssvc.InstallmentSvcFacade {
	return &installmentService{
		installmentRepo: installmentRepo,
		saleRepo:        saleRepo,
		customerRepo:    customerRepo,
	}
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

// ListInstallments returns every installment with its derived status and the
// owning customer's name resolved through the sale.
func (s *installmentService) ListInstallments(ctx context.Context, now time.Time) ([]domain.InstallmentReportRow, error) {
	installments, err := s.installmentRepo.ListInstallments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	return s.toReportRows(ctx, installments, now)
}

// ListOverdue returns the installments that are unpaid and past due at now.
func (s *installmentService) ListOverdue(ctx context.Context, now time.Time) ([]domain.InstallmentReportRow, error) {
	rows, err := s.ListInstallments(ctx, now)
	if err != nil {
		return nil, err
	}
	overdue := make([]domain.InstallmentReportRow, 0)
	for _, row := range rows {
		if row.EffectiveStatus == domain.InstallmentOverdue {
			overdue = append(overdue, row)
		}
	}
	return overdue, nil
}

// ListBySale returns one sale's schedule with derived statuses applied.
func (s *installmentService) ListBySale(ctx context.Context, saleID string, now time.Time) ([]domain.Installment, error) {
	installments, err := s.installmentRepo.ListInstallmentsBySaleID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments for sale %s: %w", saleID, err)
	}
	for i := range installments {
		installments[i].Status = installments[i].EffectiveStatus(now)
	}
	return installments, nil
}

// Collect marks a PENDING installment PAID, posts the income entry to the
// safe and lowers the customer's outstanding balance, atomically. A second
// collect on the same installment fails with apperrors.ErrConflict before
// anything is posted, so the ledger can never double-count a payment.
func (s *installmentService) Collect(ctx context.Context, installmentID string, collectorUserID string) (*domain.Installment, error) {
	installment, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: installment %s", apperrors.ErrNotFound, installmentID)
		}
		return nil, fmt.Errorf("failed to fetch installment %s: %w", installmentID, err)
	}
	if installment.Status != domain.InstallmentPending {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadyCollected)
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, installment.SaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale %s: %w", installment.SaleID, err)
	}

	customerName := domain.UnknownCustomerName
	if customer, err := s.customerRepo.FindCustomerByID(ctx, sale.CustomerID); err == nil {
		customerName = customer.Name
	}

	now := time.Now().UTC()
	entry := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TransactionIncome,
		Category:      domain.CategoryInstallmentCollection,
		Amount:        installment.Amount,
		Date:          now,
		Description:   fmt.Sprintf("Installment %s - %s", installment.InstallmentID, customerName),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     collectorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: collectorUserID,
		},
	}

	if err := s.installmentRepo.CollectInstallment(ctx, installmentID, sale.CustomerID, entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost the race against a concurrent collect.
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadyCollected)
		}
		s.LogError(ctx, err, "Failed to collect installment", slog.String("installment_id", installmentID))
		return nil, fmt.Errorf("failed to collect installment: %w", err)
	}

	installment.Status = domain.InstallmentPaid
	installment.LastUpdatedAt = now
	installment.LastUpdatedBy = collectorUserID

	s.LogInfo(ctx, "Installment collected",
		slog.String("installment_id", installmentID),
		slog.String("amount", installment.Amount.String()),
		slog.String("customer", customerName),
	)
	return installment, nil
}

// toReportRows resolves each installment's customer name through its sale
// and stamps the derived status. A dangling sale or customer reference
// degrades to a placeholder name rather than failing the whole listing.
func (s *installmentService) toReportRows(ctx context.Context, installments []domain.Installment, now time.Time) ([]domain.InstallmentReportRow, error) {
	sales, err := s.saleRepo.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customerNames := make(map[string]string, len(customers))
	for _, c := range customers {
		customerNames[c.CustomerID] = c.Name
	}
	saleCustomers := make(map[string]string, len(sales))
	for _, sale := range sales {
		saleCustomers[sale.SaleID] = sale.CustomerID
	}

	rows := make([]domain.InstallmentReportRow, len(installments))
	for i, inst := range installments {
		name := domain.UnknownCustomerName
		if customerID, ok := saleCustomers[inst.SaleID]; ok {
			name = nameOrPlaceholder(customerNames, customerID, domain.UnknownCustomerName)
		}
		rows[i] = domain.InstallmentReportRow{
			Installment:     inst,
			EffectiveStatus: inst.EffectiveStatus(now),
			CustomerName:    name,
		}
	}
	return rows, nil
}
