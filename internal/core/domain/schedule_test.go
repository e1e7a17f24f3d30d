package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostech/erp-backend/internal/core/domain"
)

func TestGenerateSchedule(t *testing.T) {
	saleDate := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		financed    decimal.Decimal
		termMonths  int
		wantAmounts []string
	}{
		{
			name:        "divides evenly",
			financed:    decimal.NewFromInt(24000),
			termMonths:  4,
			wantAmounts: []string{"6000", "6000", "6000", "6000"},
		},
		{
			name:        "last line absorbs rounding remainder",
			financed:    decimal.NewFromInt(10000),
			termMonths:  3,
			wantAmounts: []string{"3333.33", "3333.33", "3333.34"},
		},
		{
			name:        "rounding down leaves positive remainder",
			financed:    decimal.NewFromInt(100),
			termMonths:  6,
			wantAmounts: []string{"16.67", "16.67", "16.67", "16.67", "16.67", "16.65"},
		},
		{
			name:        "single installment takes the whole principal",
			financed:    decimal.RequireFromString("1234.56"),
			termMonths:  1,
			wantAmounts: []string{"1234.56"},
		},
		{
			name:        "zero principal yields zero lines amounts",
			financed:    decimal.Zero,
			termMonths:  2,
			wantAmounts: []string{"0", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := domain.GenerateSchedule(tt.financed, tt.termMonths, saleDate)
			require.NoError(t, err)
			require.Len(t, lines, tt.termMonths)

			sum := decimal.Zero
			for k, line := range lines {
				assert.Equal(t, tt.wantAmounts[k], line.Amount.String())
				assert.Equal(t, saleDate.AddDate(0, k+1, 0), line.DueDate)
				sum = sum.Add(line.Amount)
			}
			assert.True(t, sum.Equal(tt.financed), "lines must sum exactly to the financed amount, got %s", sum)
		})
	}
}

func TestGenerateScheduleRejectsBadInput(t *testing.T) {
	saleDate := time.Now().UTC()

	_, err := domain.GenerateSchedule(decimal.NewFromInt(1000), 0, saleDate)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	_, err = domain.GenerateSchedule(decimal.NewFromInt(1000), -3, saleDate)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	_, err = domain.GenerateSchedule(decimal.NewFromInt(-1), 3, saleDate)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGenerateScheduleMonthEndDueDates(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month to Mar 2/3; the schedule inherits
	// Go's normalization rather than clamping to the end of February.
	saleDate := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	lines, err := domain.GenerateSchedule(decimal.NewFromInt(300), 3, saleDate)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, saleDate.AddDate(0, 1, 0), lines[0].DueDate)
	assert.Equal(t, saleDate.AddDate(0, 3, 0), lines[2].DueDate)
}

func TestIsAllowedTerm(t *testing.T) {
	for _, term := range domain.AllowedTerms {
		assert.True(t, domain.IsAllowedTerm(term), "term %d should be allowed", term)
	}
	for _, term := range []int{0, -1, 5, 7, 8, 9, 11, 13, 36} {
		assert.False(t, domain.IsAllowedTerm(term), "term %d should be rejected", term)
	}
}
