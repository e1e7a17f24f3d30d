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
	ErrShareSumExceeded    = errors.New("partner share percentages would exceed 100")
	ErrNoPartners          = errors.New("no partners registered to distribute to")
	ErrInsufficientBalance = errors.New("withdrawal exceeds the partner's current balance")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInvalidSharePercent = errors.New("share percentage must be between 0 and 100")
)

// withdrawTolerance absorbs schedule rounding: a wallet of 5399.9999 still
// honours a withdrawal of 5400.
var withdrawTolerance = decimal.NewFromFloat(0.1)

var oneHundred = decimal.NewFromInt(100)

// partnerService runs the profit-distribution engine: partner registry,
// wallet credits, payouts and the append-only audit trail.
type partnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
	safeSvc     portssvc.SafeSvcFacade
}

// NewPartnerService creates a new PartnerService.
func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade, safeSvc portssvc.SafeSvcFacade) portssvc.PartnerSvcFacade {
	return &partnerService{partnerRepo: partnerRepo, safeSvc: safeSvc}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

// CreatePartner registers a partner. The combined share across all partners
// must stay at or below 100 percent.
func (s *partnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, creatorUserID string) (*domain.Partner, error) {
	if err := s.validateShareSum(ctx, req.SharePercentage, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	partner := domain.Partner{
		PartnerID:       uuid.NewString(),
		Name:            req.Name,
		SharePercentage: req.SharePercentage,
		CurrentBalance:  decimal.Zero,
		TotalWithdrawn:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		s.LogError(ctx, err, "Failed to save partner", slog.String("partner_name", req.Name))
		return nil, fmt.Errorf("failed to save partner: %w", err)
	}

	s.LogInfo(ctx, "Partner created", slog.String("partner_id", partner.PartnerID), slog.String("share", partner.SharePercentage.String()))
	return &partner, nil
}

// ListPartners retrieves all partners.
func (s *partnerService) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	partners, err := s.partnerRepo.ListPartners(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list partners")
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	return partners, nil
}

// UpdatePartner applies name and share changes, re-checking the share sum.
// Wallet figures are not touchable through this path.
func (s *partnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, updaterUserID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.SharePercentage != nil {
		if err := s.validateShareSum(ctx, *req.SharePercentage, partnerID); err != nil {
			return nil, err
		}
		partner.SharePercentage = *req.SharePercentage
	}
	partner.LastUpdatedAt = time.Now().UTC()
	partner.LastUpdatedBy = updaterUserID

	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		s.LogError(ctx, err, "Failed to update partner", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}
	return partner, nil
}

// Distribute credits every partner's wallet with amount x share / 100 and
// appends one DISTRIBUTION audit row per partner, atomically. No safe entry
// is posted: a distribution moves entitlement, not cash. The cash leaves the
// safe only when a partner withdraws.
func (s *partnerService) Distribute(ctx context.Context, amount decimal.Decimal, actorUserID string) ([]domain.ProfitDistributionRecord, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	partners, err := s.partnerRepo.ListPartners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	if len(partners) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoPartners)
	}

	now := time.Now().UTC()
	records := make([]domain.ProfitDistributionRecord, 0, len(partners))
	for _, partner := range partners {
		share := amount.Mul(partner.SharePercentage).Div(oneHundred).Round(2)
		if !share.IsPositive() {
			continue
		}
		records = append(records, domain.ProfitDistributionRecord{
			RecordID:    uuid.NewString(),
			PartnerID:   partner.PartnerID,
			PartnerName: partner.Name,
			Amount:      share,
			Type:        domain.DistributionCredit,
			Date:        now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		})
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: all partner shares are zero", apperrors.ErrValidation)
	}

	if err := s.partnerRepo.Distribute(ctx, records); err != nil {
		s.LogError(ctx, err, "Failed to distribute profit", slog.String("amount", amount.String()))
		return nil, fmt.Errorf("failed to distribute profit: %w", err)
	}

	s.LogInfo(ctx, "Profit distributed",
		slog.String("amount", amount.String()),
		slog.Int("partners", len(records)),
	)
	return records, nil
}

// Withdraw pays out part of a partner's entitlement: wallet down, total
// withdrawn up, safe WITHDRAWAL entry in the reserved payout category, and
// one WITHDRAWAL audit row, all atomically. A small tolerance covers the
// rounding drift distributions leave behind; anything beyond it fails with
// apperrors.ErrConflict.
func (s *partnerService) Withdraw(ctx context.Context, partnerID string, amount decimal.Decimal, actorUserID string) (*domain.Partner, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: partner %s", apperrors.ErrNotFound, partnerID)
		}
		return nil, fmt.Errorf("failed to fetch partner %s: %w", partnerID, err)
	}

	if amount.Sub(partner.CurrentBalance).GreaterThan(withdrawTolerance) {
		return nil, fmt.Errorf("%w: %w (balance %s, requested %s)",
			apperrors.ErrConflict, ErrInsufficientBalance, partner.CurrentBalance, amount)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorUserID,
	}
	entry := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TransactionWithdrawal,
		Category:      domain.CategoryProfitDistribution,
		Amount:        amount,
		Date:          now,
		Description:   fmt.Sprintf("Partner payout - %s", partner.Name),
		AuditFields:   audit,
	}
	record := domain.ProfitDistributionRecord{
		RecordID:    uuid.NewString(),
		PartnerID:   partner.PartnerID,
		PartnerName: partner.Name,
		Amount:      amount,
		Type:        domain.DistributionWithdrawal,
		Date:        now,
		AuditFields: audit,
	}

	if err := s.partnerRepo.Withdraw(ctx, partnerID, amount, entry, record); err != nil {
		s.LogError(ctx, err, "Failed to withdraw", slog.String("partner_id", partnerID), slog.String("amount", amount.String()))
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}

	partner.CurrentBalance = decimal.Max(decimal.Zero, partner.CurrentBalance.Sub(amount))
	partner.TotalWithdrawn = partner.TotalWithdrawn.Add(amount)
	partner.LastUpdatedAt = now
	partner.LastUpdatedBy = actorUserID

	s.LogInfo(ctx, "Partner withdrawal completed",
		slog.String("partner_id", partnerID),
		slog.String("amount", amount.String()),
	)
	return partner, nil
}

// History returns the full distribution audit trail, newest first.
func (s *partnerService) History(ctx context.Context) ([]domain.ProfitDistributionRecord, error) {
	records, err := s.partnerRepo.ListDistributionHistory(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list distribution history")
		return nil, fmt.Errorf("failed to list distribution history: %w", err)
	}
	return records, nil
}

// ProfitSummary reports the distributable base: total income minus operating
// expense, with payouts excluded and losses floored at zero.
func (s *partnerService) ProfitSummary(ctx context.Context) (*dto.ProfitSummaryResponse, error) {
	income, expense, net, err := s.safeSvc.OperatingProfit(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProfitSummaryResponse{
		TotalIncome:        income,
		OperatingExpense:   expense,
		NetOperatingProfit: net,
	}, nil
}

// validateShareSum checks that the combined share percentage across all
// partners stays at or below 100 after giving excludePartnerID (empty for a
// new partner) the candidate share.
func (s *partnerService) validateShareSum(ctx context.Context, candidate decimal.Decimal, excludePartnerID string) error {
	if candidate.IsNegative() || candidate.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidSharePercent)
	}

	partners, err := s.partnerRepo.ListPartners(ctx)
	if err != nil {
		return fmt.Errorf("failed to list partners: %w", err)
	}

	total := candidate
	for _, partner := range partners {
		if partner.PartnerID == excludePartnerID {
			continue
		}
		total = total.Add(partner.SharePercentage)
	}
	if total.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: %w (would be %s)", apperrors.ErrValidation, ErrShareSumExceeded, total)
	}
	return nil
}
