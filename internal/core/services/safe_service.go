package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
)

// ErrReservedCategory signals a manual post into a category only domain
// operations may write.
var ErrReservedCategory = errors.New("category is reserved for system postings")

// safeService manages the append-only cash ledger.
type safeService struct {
	BaseService
	safeRepo portsrepo.SafeRepositoryFacade
}

// NewSafeService creates a new SafeService.
func NewSafeService(safeRepo portsrepo.SafeRepositoryFacade) portssvc.SafeSvcFacade {
	return &safeService{safeRepo: safeRepo}
}

var _ portssvc.SafeSvcFacade = (*safeService)(nil)

// PostTransaction appends a manual safe entry. The payout category is
// reserved: only the profit-distribution engine writes it, so the operating
// profit base cannot be polluted by hand-entered rows.
func (s *safeService) PostTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	entryType := domain.TransactionType(req.Type)
	if !entryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, req.Type)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if strings.EqualFold(strings.TrimSpace(req.Category), domain.CategoryProfitDistribution) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrReservedCategory)
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	entry := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          entryType,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.safeRepo.SaveTransaction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save safe entry", slog.String("category", req.Category))
		return nil, fmt.Errorf("failed to save safe entry: %w", err)
	}

	s.LogInfo(ctx, "Safe entry posted",
		slog.String("transaction_id", entry.TransactionID),
		slog.String("type", string(entryType)),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

// ListTransactions returns all safe entries.
func (s *safeService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	entries, err := s.safeRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list safe entries")
		return nil, fmt.Errorf("failed to list safe entries: %w", err)
	}
	return entries, nil
}

// Balance returns sum(INCOME) - sum(EXPENSE) - sum(WITHDRAWAL).
func (s *safeService) Balance(ctx context.Context) (decimal.Decimal, error) {
	return s.BalanceExcluding(ctx, nil)
}

// BalanceExcluding computes the balance while skipping entries whose
// category is in the given set.
func (s *safeService) BalanceExcluding(ctx context.Context, categories []string) (decimal.Decimal, error) {
	totals, err := s.safeRepo.SumByTypeExcludingCategories(ctx, categories)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum safe entries")
		return decimal.Zero, fmt.Errorf("failed to sum safe entries: %w", err)
	}
	return totals[domain.TransactionIncome].
		Sub(totals[domain.TransactionExpense]).
		Sub(totals[domain.TransactionWithdrawal]), nil
}

// OperatingProfit returns total income, operating expense and their
// difference. Payout entries are excluded from the expense side so that
// distributing profit never shrinks the base it was computed from, and a
// loss-making period reads as zero distributable profit rather than a
// negative figure.
func (s *safeService) OperatingProfit(ctx context.Context) (income, expense, net decimal.Decimal, err error) {
	totals, err := s.safeRepo.SumByTypeExcludingCategories(ctx, []string{domain.CategoryProfitDistribution})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute operating profit")
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("failed to compute operating profit: %w", err)
	}

	income = totals[domain.TransactionIncome]
	expense = totals[domain.TransactionExpense]
	net = income.Sub(expense)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return income, expense, net, nil
}
