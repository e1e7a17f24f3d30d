package services

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
)

// reportingService builds the read-side projections: the monthly report and
// the dashboard summary. Every operation is a pure fold over the other
// components' data; nothing here writes.
type reportingService struct {
	BaseService
	repos             portsrepo.RepositoryProvider
	safeSvc           portssvc.SafeSvcFacade
	mailer            portssvc.Mailer
	lowStockThreshold int
}

// NewReportingService creates a new ReportingService. mailer may be nil when
// outbound mail is not configured; SendMonthlyReport then fails with
// apperrors.ErrUnavailable.
func NewReportingService(repos portsrepo.RepositoryProvider, safeSvc portssvc.SafeSvcFacade, mailer portssvc.Mailer, lowStockThreshold int) portssvc.ReportingSvcFacade {
	return &reportingService{
		repos:             repos,
		safeSvc:           safeSvc,
		mailer:            mailer,
		lowStockThreshold: lowStockThreshold,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// MonthlyReport aggregates one calendar month across sales, installments,
// the safe and the distribution history. A record with dangling references
// degrades to placeholder display names; the fold never fails on a single
// malformed record.
func (s *reportingService) MonthlyReport(ctx context.Context, month int, year int) (*domain.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1..12, got %d", apperrors.ErrValidation, month)
	}

	sales, err := s.repos.Sale.ListSalesByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for period: %w", err)
	}
	installments, err := s.repos.Installment.ListInstallmentsByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments for period: %w", err)
	}
	entries, err := s.repos.Safe.ListTransactionsByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list safe entries for period: %w", err)
	}
	payouts, err := s.repos.Partner.ListDistributionHistoryByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list distribution history for period: %w", err)
	}

	customers, err := s.repos.Customer.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	products, err := s.repos.Product.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	customerNames := make(map[string]string, len(customers))
	for _, c := range customers {
		customerNames[c.CustomerID] = c.Name
	}
	productNames := make(map[string]string, len(products))
	for _, p := range products {
		productNames[p.ProductID] = p.Name
	}

	now := time.Now().UTC()
	report := &domain.MonthlyReport{
		Month:       month,
		Year:        year,
		GeneratedAt: now,

		SalesTotal:            decimal.Zero,
		DownPaymentsCollected: decimal.Zero,
		InstallmentsCollected: decimal.Zero,
		InstallmentsPending:   decimal.Zero,
		SafeIncome:            decimal.Zero,
		SafeExpense:           decimal.Zero,
		SafeNet:               decimal.Zero,
		DistributedTotal:      decimal.Zero,
	}

	report.Sales = make([]domain.SaleReportRow, len(sales))
	saleCustomers := make(map[string]string, len(sales))
	for i, sale := range sales {
		report.Sales[i] = domain.SaleReportRow{
			Sale:         sale,
			CustomerName: nameOrPlaceholder(customerNames, sale.CustomerID, domain.UnknownCustomerName),
			ProductName:  nameOrPlaceholder(productNames, sale.ProductID, domain.UnknownProductName),
		}
		saleCustomers[sale.SaleID] = sale.CustomerID
		report.SalesTotal = report.SalesTotal.Add(sale.TotalAmount)
		report.DownPaymentsCollected = report.DownPaymentsCollected.Add(sale.DownPayment)
	}
	report.InvoiceCount = len(sales)

	report.Installments = make([]domain.InstallmentReportRow, len(installments))
	for i, inst := range installments {
		name := domain.UnknownCustomerName
		if customerID, ok := saleCustomers[inst.SaleID]; ok {
			name = nameOrPlaceholder(customerNames, customerID, domain.UnknownCustomerName)
		}
		report.Installments[i] = domain.InstallmentReportRow{
			Installment:     inst,
			EffectiveStatus: inst.EffectiveStatus(now),
			CustomerName:    name,
		}
		if inst.Status == domain.InstallmentPaid {
			report.InstallmentsCollected = report.InstallmentsCollected.Add(inst.Amount)
		} else {
			report.InstallmentsPending = report.InstallmentsPending.Add(inst.Amount)
		}
	}
	report.InstallmentCount = len(installments)

	report.Transactions = entries
	for _, e := range entries {
		switch e.Type {
		case domain.TransactionIncome:
			report.SafeIncome = report.SafeIncome.Add(e.Amount)
		case domain.TransactionExpense:
			report.SafeExpense = report.SafeExpense.Add(e.Amount)
		}
		report.SafeNet = report.SafeNet.Add(e.SignedAmount())
	}

	report.Payouts = payouts
	for _, p := range payouts {
		if p.Type == domain.DistributionCredit {
			report.DistributedTotal = report.DistributedTotal.Add(p.Amount)
			report.DistributionCount++
		}
	}

	return report, nil
}

// DashboardStats builds the landing-page summary for the current month.
func (s *reportingService) DashboardStats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	balance, err := s.safeSvc.Balance(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.repos.Safe.ListTransactionsByPeriod(ctx, int(now.Month()), now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to list safe entries for period: %w", err)
	}
	monthIncome, monthExpense := decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case domain.TransactionIncome:
			monthIncome = monthIncome.Add(e.Amount)
		case domain.TransactionExpense:
			monthExpense = monthExpense.Add(e.Amount)
		}
	}

	customerCount, err := s.repos.Customer.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	outstanding, err := s.repos.Customer.SumOutstandingBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum outstanding balances: %w", err)
	}
	overdue, err := s.repos.Installment.CountOverdue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue installments: %w", err)
	}
	lowStock, err := s.repos.Product.CountLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to count low-stock products: %w", err)
	}

	return &domain.DashboardStats{
		SafeBalance:         balance,
		MonthIncome:         monthIncome,
		MonthExpense:        monthExpense,
		CustomerCount:       customerCount,
		OutstandingTotal:    outstanding,
		OverdueInstallments: overdue,
		LowStockProducts:    lowStock,
	}, nil
}

// SendMonthlyReport renders the monthly aggregation as HTML and hands it to
// the mail dispatcher.
func (s *reportingService) SendMonthlyReport(ctx context.Context, address string, month int, year int) error {
	if s.mailer == nil {
		return fmt.Errorf("%w: outbound mail is not configured", apperrors.ErrUnavailable)
	}

	report, err := s.MonthlyReport(ctx, month, year)
	if err != nil {
		return err
	}

	body, err := renderReportHTML(report)
	if err != nil {
		s.LogError(ctx, err, "Failed to render report email")
		return fmt.Errorf("failed to render report email: %w", err)
	}

	subject := fmt.Sprintf("Monthly report %04d-%02d", year, month)
	if err := s.mailer.Send(ctx, address, subject, body); err != nil {
		s.LogError(ctx, err, "Failed to send report email", slog.String("address", address))
		return fmt.Errorf("failed to send report email: %w", err)
	}

	s.LogInfo(ctx, "Monthly report emailed", slog.String("address", address), slog.Int("month", month), slog.Int("year", year))
	return nil
}

var reportTemplate = template.Must(template.New("monthly-report").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>Monthly report {{printf "%04d-%02d" .Year .Month}}</h2>
<table border="1" cellpadding="4" cellspacing="0">
<tr><td>Sales total</td><td>{{.SalesTotal}}</td></tr>
<tr><td>Invoices</td><td>{{.InvoiceCount}}</td></tr>
<tr><td>Down payments collected</td><td>{{.DownPaymentsCollected}}</td></tr>
<tr><td>Installments collected</td><td>{{.InstallmentsCollected}}</td></tr>
<tr><td>Installments pending</td><td>{{.InstallmentsPending}}</td></tr>
<tr><td>Safe income</td><td>{{.SafeIncome}}</td></tr>
<tr><td>Safe expense</td><td>{{.SafeExpense}}</td></tr>
<tr><td>Safe net</td><td>{{.SafeNet}}</td></tr>
<tr><td>Profit distributed</td><td>{{.DistributedTotal}}</td></tr>
</table>
<h3>Sales</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Date</th><th>Customer</th><th>Product</th><th>Method</th><th>Total</th><th>Down payment</th></tr>
{{range .Sales}}<tr><td>{{.SaleDate.Format "2006-01-02"}}</td><td>{{.CustomerName}}</td><td>{{.ProductName}}</td><td>{{.PaymentMethod}}</td><td>{{.TotalAmount}}</td><td>{{.DownPayment}}</td></tr>
{{end}}</table>
<p>Generated at {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
</body>
</html>
`))

func renderReportHTML(report *domain.MonthlyReport) (string, error) {
	var b strings.Builder
	if err := reportTemplate.Execute(&b, report); err != nil {
		return "", err
	}
	return b.String(), nil
}
