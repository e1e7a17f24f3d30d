package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTerm is returned when the installment term is not positive.
	ErrInvalidTerm = errors.New("installment term must be a positive number of months")
	// ErrInvalidAmount is returned when the financed amount is negative.
	ErrInvalidAmount = errors.New("financed amount must not be negative")
)

// ScheduleLine is one generated installment before persistence.
type ScheduleLine struct {
	DueDate time.Time
	Amount  decimal.Decimal
}

// GenerateSchedule divides a financed principal into termMonths monthly
// installments. The k-th line is due k+1 months after the sale date. Each
// line carries financed/termMonths rounded to two decimal places; the last
// line absorbs the rounding remainder so the lines always sum exactly to
// the financed amount.
//
// The function is pure: persisting the lines, posting the down payment to
// the safe, and raising the customer's outstanding balance are the sale
// creation flow's responsibility.
func GenerateSchedule(financed decimal.Decimal, termMonths int, saleDate time.Time) ([]ScheduleLine, error) {
	if termMonths <= 0 {
		return nil, ErrInvalidTerm
	}
	if financed.IsNegative() {
		return nil, ErrInvalidAmount
	}

	per := financed.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	lines := make([]ScheduleLine, termMonths)
	allocated := decimal.Zero
	for k := 0; k < termMonths; k++ {
		amount := per
		if k == termMonths-1 {
			amount = financed.Sub(allocated)
		}
		lines[k] = ScheduleLine{
			DueDate: saleDate.AddDate(0, k+1, 0),
			Amount:  amount,
		}
		allocated = allocated.Add(amount)
	}
	return lines, nil
}
