package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a buyer who may owe installment principal.
//
// OutstandingBalance is the sum of the customer's unpaid installment
// amounts. It is never mutated directly by the transport layer; only sale
// creation (increment by financed principal) and installment collection
// (decrement, floored at zero) move it.
type Customer struct {
	CustomerID         string          `json:"customerID"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	JoinDate           time.Time       `json:"joinDate"`
	AuditFields
}
