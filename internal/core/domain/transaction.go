package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a safe (cash ledger) entry.
type TransactionType string

const (
	TransactionIncome     TransactionType = "INCOME"
	TransactionExpense    TransactionType = "EXPENSE"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// IsValid reports whether the type is a known ledger entry type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionWithdrawal:
		return true
	}
	return false
}

// Reserved ledger categories written by domain operations. Manual safe
// entries may use any other free-text category, but CategoryProfitDistribution
// is reserved so that balanceExcluding can cleanly carve payouts out of the
// operating-profit base.
const (
	CategorySales                 = "sales"
	CategoryInstallmentCollection = "installment collection"
	CategoryProfitDistribution    = "profit distribution"
)

// Transaction is one append-only safe entry. Entries are never updated or
// deleted once posted; corrections are new entries.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"` // always positive; Type carries the direction
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	AuditFields
}

// SignedAmount returns the entry's contribution to the safe balance:
// positive for INCOME, negative for EXPENSE and WITHDRAWAL.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// LedgerBalance folds entries into the safe balance. The fold is
// order-independent: sum(INCOME) - sum(EXPENSE) - sum(WITHDRAWAL).
func LedgerBalance(entries []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.SignedAmount())
	}
	return total
}
