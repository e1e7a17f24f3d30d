package repositories

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartnerRepositoryFacade defines persistence operations for partners and
// the profit-distribution audit trail.
type PartnerRepositoryFacade interface {
	SavePartner(ctx context.Context, partner domain.Partner) error
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	ListPartners(ctx context.Context) ([]domain.Partner, error)
	UpdatePartner(ctx context.Context, partner domain.Partner) error

	// Distribute credits each record's partner with the record's amount and
	// appends the DISTRIBUTION audit rows, all in one database transaction.
	Distribute(ctx context.Context, records []domain.ProfitDistributionRecord) error

	// Withdraw lowers the partner's current balance by amount (floored at
	// zero), raises total withdrawn, posts the safe withdrawal entry and
	// appends the WITHDRAWAL audit row, all in one database transaction.
	Withdraw(ctx context.Context, partnerID string, amount decimal.Decimal, entry domain.Transaction, record domain.ProfitDistributionRecord) error

	ListDistributionHistory(ctx context.Context) ([]domain.ProfitDistributionRecord, error)
	ListDistributionHistoryByPeriod(ctx context.Context, month int, year int) ([]domain.ProfitDistributionRecord, error)
}
