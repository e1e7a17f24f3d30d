package services

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PartnerSvcFacade defines the profit-distribution engine's operations.
type PartnerSvcFacade interface {
	CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, creatorUserID string) (*domain.Partner, error)
	ListPartners(ctx context.Context) ([]domain.Partner, error)
	UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, updaterUserID string) (*domain.Partner, error)
	// Distribute credits every partner's wallet with amount x share / 100
	// and appends one DISTRIBUTION audit row per partner. No safe entry is
	// posted; entitlement only becomes a cash movement on withdrawal.
	Distribute(ctx context.Context, amount decimal.Decimal, actorUserID string) ([]domain.ProfitDistributionRecord, error)
	// Withdraw pays out part of a partner's entitlement: wallet down, total
	// withdrawn up, safe WITHDRAWAL entry with the reserved payout category,
	// WITHDRAWAL audit row. Amounts above the wallet (beyond a small
	// rounding tolerance) fail with apperrors.ErrConflict.
	Withdraw(ctx context.Context, partnerID string, amount decimal.Decimal, actorUserID string) (*domain.Partner, error)
	History(ctx context.Context) ([]domain.ProfitDistributionRecord, error)
	ProfitSummary(ctx context.Context) (*dto.ProfitSummaryResponse, error)
}
