package dto

import (
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest defines the data needed to register a partner.
type CreatePartnerRequest struct {
	Name            string          `json:"name" binding:"required"`
	SharePercentage decimal.Decimal `json:"sharePercentage" binding:"required"`
}

// UpdatePartnerRequest defines the data allowed for updating a partner.
type UpdatePartnerRequest struct {
	Name            *string          `json:"name"`
	SharePercentage *decimal.Decimal `json:"sharePercentage"`
}

// DistributeRequest asks the engine to credit every partner's wallet with
// its percentage share of the given amount.
type DistributeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WithdrawRequest asks the engine to pay out part of a partner's entitlement.
type WithdrawRequest struct {
	PartnerID string          `json:"partnerID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID       string          `json:"partnerID"`
	Name            string          `json:"name"`
	SharePercentage decimal.Decimal `json:"sharePercentage"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	TotalWithdrawn  decimal.Decimal `json:"totalWithdrawn"`
}

// DistributionRecordResponse defines one audit-trail row.
type DistributionRecordResponse struct {
	RecordID    string          `json:"recordID"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
}

// ProfitSummaryResponse reports the operating-profit base used for
// distribution: total income minus operating expenses, with payout entries
// excluded so distributing profit never shrinks the figure it came from.
type ProfitSummaryResponse struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	OperatingExpense   decimal.Decimal `json:"operatingExpense"`
	NetOperatingProfit decimal.Decimal `json:"netOperatingProfit"`
}

// ToPartnerResponse converts a domain.Partner to its DTO.
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:       p.PartnerID,
		Name:            p.Name,
		SharePercentage: p.SharePercentage,
		CurrentBalance:  p.CurrentBalance,
		TotalWithdrawn:  p.TotalWithdrawn,
	}
}

// ToListPartnerResponse converts a slice of domain.Partner to DTOs.
func ToListPartnerResponse(partners []domain.Partner) []PartnerResponse {
	res := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		res[i] = ToPartnerResponse(&p)
	}
	return res
}

// ToDistributionRecordResponse converts one audit row to its DTO.
func ToDistributionRecordResponse(r *domain.ProfitDistributionRecord) DistributionRecordResponse {
	return DistributionRecordResponse{
		RecordID:    r.RecordID,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		Amount:      r.Amount,
		Type:        string(r.Type),
		Date:        r.Date,
	}
}

// ToListDistributionRecordResponse converts a slice of audit rows to DTOs.
func ToListDistributionRecordResponse(records []domain.ProfitDistributionRecord) []DistributionRecordResponse {
	res := make([]DistributionRecordResponse, len(records))
	for i, r := range records {
		res[i] = ToDistributionRecordResponse(&r)
	}
	return res
}
