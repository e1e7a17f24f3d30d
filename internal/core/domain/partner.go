package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner is a profit-sharing stakeholder.
//
// CurrentBalance is the entitlement available to withdraw now; it is raised
// by distributions and lowered by withdrawals. TotalWithdrawn accumulates
// everything ever paid out.
type Partner struct {
	PartnerID       string          `json:"partnerID"`
	Name            string          `json:"name"`
	SharePercentage decimal.Decimal `json:"sharePercentage"` // 0..100
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	TotalWithdrawn  decimal.Decimal `json:"totalWithdrawn"`
	AuditFields
}

// DistributionType classifies an entry in the distribution audit trail.
type DistributionType string

const (
	DistributionCredit     DistributionType = "DISTRIBUTION"
	DistributionWithdrawal DistributionType = "WITHDRAWAL"
)

// ProfitDistributionRecord is one append-only audit row: a partner's wallet
// was credited (DISTRIBUTION) or paid out (WITHDRAWAL).
type ProfitDistributionRecord struct {
	RecordID    string           `json:"recordID"`
	PartnerID   string           `json:"partnerID"`
	PartnerName string           `json:"partnerName"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        DistributionType `json:"type"`
	Date        time.Time        `json:"date"`
	AuditFields
}
