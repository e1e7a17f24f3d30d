package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder display values substituted when a referenced record is
// missing. Aggregation never fails on a single malformed record; it only
// degrades that record's display fields.
const (
	UnknownCustomerName = "Unknown customer"
	UnknownProductName  = "Unknown product"
)

// SaleReportRow is a sale enriched with resolved display names for reports.
type SaleReportRow struct {
	Sale
	CustomerName string `json:"customerName"`
	ProductName  string `json:"productName"`
}

// InstallmentReportRow is an installment with its derived status and the
// owning customer resolved.
type InstallmentReportRow struct {
	Installment
	EffectiveStatus InstallmentStatus `json:"effectiveStatus"`
	CustomerName    string            `json:"customerName"`
}

// MonthlyReport aggregates one (month, year) period across sales,
// installments, the safe and the distribution history.
type MonthlyReport struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	SalesTotal            decimal.Decimal `json:"salesTotal"`
	InvoiceCount          int             `json:"invoiceCount"`
	DownPaymentsCollected decimal.Decimal `json:"downPaymentsCollected"`

	InstallmentsCollected decimal.Decimal `json:"installmentsCollected"`
	InstallmentsPending   decimal.Decimal `json:"installmentsPending"`
	InstallmentCount      int             `json:"installmentCount"`

	SafeIncome  decimal.Decimal `json:"safeIncome"`
	SafeExpense decimal.Decimal `json:"safeExpense"`
	SafeNet     decimal.Decimal `json:"safeNet"`

	DistributedTotal  decimal.Decimal `json:"distributedTotal"`
	DistributionCount int             `json:"distributionCount"`

	Sales        []SaleReportRow            `json:"sales"`
	Installments []InstallmentReportRow     `json:"installments"`
	Transactions []Transaction              `json:"transactions"`
	Payouts      []ProfitDistributionRecord `json:"payouts"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	SafeBalance         decimal.Decimal `json:"safeBalance"`
	MonthIncome         decimal.Decimal `json:"monthIncome"`
	MonthExpense        decimal.Decimal `json:"monthExpense"`
	CustomerCount       int             `json:"customerCount"`
	OutstandingTotal    decimal.Decimal `json:"outstandingTotal"`
	OverdueInstallments int             `json:"overdueInstallments"`
	LowStockProducts    int             `json:"lowStockProducts"`
}

// InPeriod reports whether t falls in the given calendar month.
func InPeriod(t time.Time, month int, year int) bool {
	return int(t.Month()) == month && t.Year() == year
}
