package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a sale is settled.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentInstallment PaymentMethod = "INSTALLMENT"
)

// AllowedTerms is the fixed menu of installment term lengths, in months.
var AllowedTerms = []int{1, 2, 3, 4, 6, 10, 12, 24}

// IsAllowedTerm reports whether termMonths is on the fixed term menu.
func IsAllowedTerm(termMonths int) bool {
	for _, t := range AllowedTerms {
		if t == termMonths {
			return true
		}
	}
	return false
}

// Sale represents a single invoice. TotalAmount freezes the product's sell
// price at the time of sale. For CASH sales DownPayment equals TotalAmount
// and InstallmentsCount is zero. A sale is immutable once created; only its
// linked installments change state afterwards.
type Sale struct {
	SaleID            string          `json:"saleID"`
	CustomerID        string          `json:"customerID"`
	ProductID         string          `json:"productID"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	SaleDate          time.Time       `json:"saleDate"`
	InstallmentsCount int             `json:"installmentsCount"`
	AuditFields
}

// FinancedAmount is the principal converted into installments.
func (s Sale) FinancedAmount() decimal.Decimal {
	return s.TotalAmount.Sub(s.DownPayment)
}
