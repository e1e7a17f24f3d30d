package dto

import (
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InstallmentResponse defines the data returned for an installment. Status
// is the derived display status (OVERDUE when pending and past due).
type InstallmentResponse struct {
	InstallmentID string          `json:"installmentID"`
	SaleID        string          `json:"saleID"`
	DueDate       time.Time       `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CustomerName  string          `json:"customerName,omitempty"`
}

// ToInstallmentResponse converts a domain.Installment, deriving the display
// status at the given instant.
func ToInstallmentResponse(inst *domain.Installment, now time.Time) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: inst.InstallmentID,
		SaleID:        inst.SaleID,
		DueDate:       inst.DueDate,
		Amount:        inst.Amount,
		Status:        string(inst.EffectiveStatus(now)),
	}
}

// ToInstallmentReportResponse converts an enriched report row.
func ToInstallmentReportResponse(row *domain.InstallmentReportRow) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: row.InstallmentID,
		SaleID:        row.SaleID,
		DueDate:       row.DueDate,
		Amount:        row.Amount,
		Status:        string(row.EffectiveStatus),
		CustomerName:  row.CustomerName,
	}
}

// ToListInstallmentReportResponse converts a slice of enriched rows.
func ToListInstallmentReportResponse(rows []domain.InstallmentReportRow) []InstallmentResponse {
	res := make([]InstallmentResponse, len(rows))
	for i, row := range rows {
		res[i] = ToInstallmentReportResponse(&row)
	}
	return res
}
