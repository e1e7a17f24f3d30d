package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the stored state of an installment.
// Only PENDING and PAID are ever persisted; OVERDUE is derived at read time
// so it can never drift from the stored state.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "PENDING"
	InstallmentPaid    InstallmentStatus = "PAID"
	InstallmentOverdue InstallmentStatus = "OVERDUE"
)

// Installment is one scheduled partial payment owed against a financed sale.
type Installment struct {
	InstallmentID string            `json:"installmentID"`
	SaleID        string            `json:"saleID"`
	DueDate       time.Time         `json:"dueDate"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        InstallmentStatus `json:"status"`
	AuditFields
}

// EffectiveStatus returns the display status at the given instant: a PENDING
// installment whose due date has passed reads as OVERDUE. The result is
// transient and reverts on its own if the clock or due date move.
func (i Installment) EffectiveStatus(now time.Time) InstallmentStatus {
	if i.Status == InstallmentPending && i.DueDate.Before(now) {
		return InstallmentOverdue
	}
	return i.Status
}

// IsOverdue reports whether the installment is unpaid and past due.
func (i Installment) IsOverdue(now time.Time) bool {
	return i.EffectiveStatus(now) == InstallmentOverdue
}
