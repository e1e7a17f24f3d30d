package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rostech/erp-backend/internal/core/domain"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.Transaction
		want  string
	}{
		{
			name:  "income counts positive",
			entry: domain.Transaction{Type: domain.TransactionIncome, Amount: decimal.NewFromInt(500)},
			want:  "500",
		},
		{
			name:  "expense counts negative",
			entry: domain.Transaction{Type: domain.TransactionExpense, Amount: decimal.NewFromInt(200)},
			want:  "-200",
		},
		{
			name:  "withdrawal counts negative",
			entry: domain.Transaction{Type: domain.TransactionWithdrawal, Amount: decimal.NewFromInt(150)},
			want:  "-150",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.SignedAmount().String())
		})
	}
}

func TestLedgerBalance(t *testing.T) {
	entries := []domain.Transaction{
		{Type: domain.TransactionIncome, Amount: decimal.NewFromInt(32000)},
		{Type: domain.TransactionIncome, Amount: decimal.NewFromInt(6000)},
		{Type: domain.TransactionExpense, Amount: decimal.NewFromInt(1500)},
		{Type: domain.TransactionWithdrawal, Amount: decimal.NewFromInt(5400)},
	}

	assert.Equal(t, "31100", domain.LedgerBalance(entries).String())
}

func TestLedgerBalanceIsOrderIndependent(t *testing.T) {
	entries := []domain.Transaction{
		{Type: domain.TransactionWithdrawal, Amount: decimal.RequireFromString("5400.25")},
		{Type: domain.TransactionIncome, Amount: decimal.RequireFromString("19000.10")},
		{Type: domain.TransactionExpense, Amount: decimal.RequireFromString("3000.35")},
	}
	reversed := []domain.Transaction{entries[2], entries[1], entries[0]}

	assert.True(t, domain.LedgerBalance(entries).Equal(domain.LedgerBalance(reversed)))
	assert.Equal(t, "10599.5", domain.LedgerBalance(entries).String())
}

func TestLedgerBalanceEmpty(t *testing.T) {
	assert.True(t, domain.LedgerBalance(nil).IsZero())
}

func TestTransactionType_IsValid(t *testing.T) {
	assert.True(t, domain.TransactionIncome.IsValid())
	assert.True(t, domain.TransactionExpense.IsValid())
	assert.True(t, domain.TransactionWithdrawal.IsValid())
	assert.False(t, domain.TransactionType("TRANSFER").IsValid())
	assert.False(t, domain.TransactionType("").IsValid())
}
