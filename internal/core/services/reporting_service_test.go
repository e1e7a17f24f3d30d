package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo    *MockCustomerRepository
	mockProductRepo     *MockProductRepository
	mockSaleRepo        *MockSaleRepository
	mockInstallmentRepo *MockInstallmentRepository
	mockSafeRepo        *MockSafeRepository
	mockPartnerRepo     *MockPartnerRepository
	mockSafeSvc         *MockSafeService
	mockMailer          *MockMailer

	customer domain.Customer
	product  domain.Product
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockCustomerRepo = new(MockCustomerRepository)
	s.mockProductRepo = new(MockProductRepository)
	s.mockSaleRepo = new(MockSaleRepository)
	s.mockInstallmentRepo = new(MockInstallmentRepository)
	s.mockSafeRepo = new(MockSafeRepository)
	s.mockPartnerRepo = new(MockPartnerRepository)
	s.mockSafeSvc = new(MockSafeService)
	s.mockMailer = new(MockMailer)

	s.customer = domain.Customer{CustomerID: uuid.NewString(), Name: "Zeynep Aydın"}
	s.product = domain.Product{ProductID: uuid.NewString(), Name: "Washing Machine"}
}

func (s *ReportingServiceTestSuite) newService(mailer portssvc.Mailer) portssvc.ReportingSvcFacade {
	repos := portsrepo.RepositoryProvider{
		Customer:    s.mockCustomerRepo,
		Product:     s.mockProductRepo,
		Sale:        s.mockSaleRepo,
		Installment: s.mockInstallmentRepo,
		Safe:        s.mockSafeRepo,
		Partner:     s.mockPartnerRepo,
	}
	return services.NewReportingService(repos, s.mockSafeSvc, mailer, 5)
}

func (s *ReportingServiceTestSuite) expectMonthlyData(sales []domain.Sale, installments []domain.Installment, entries []domain.Transaction, payouts []domain.ProfitDistributionRecord) {
	ctx := context.Background()
	s.mockSaleRepo.On("ListSalesByPeriod", ctx, 8, 2026).Return(sales, nil).Once()
	s.mockInstallmentRepo.On("ListInstallmentsByPeriod", ctx, 8, 2026).Return(installments, nil).Once()
	s.mockSafeRepo.On("ListTransactionsByPeriod", ctx, 8, 2026).Return(entries, nil).Once()
	s.mockPartnerRepo.On("ListDistributionHistoryByPeriod", ctx, 8, 2026).Return(payouts, nil).Once()
	s.mockCustomerRepo.On("ListCustomers", ctx).Return([]domain.Customer{s.customer}, nil).Once()
	s.mockProductRepo.On("ListProducts", ctx).Return([]domain.Product{s.product}, nil).Once()
}

func (s *ReportingServiceTestSuite) TestMonthlyReportAggregates() {
	ctx := context.Background()

	sales := []domain.Sale{
		{
			SaleID:      "s1",
			CustomerID:  s.customer.CustomerID,
			ProductID:   s.product.ProductID,
			TotalAmount: decimal.NewFromInt(32000),
			DownPayment: decimal.NewFromInt(8000),
		},
		{
			SaleID:      "s2",
			CustomerID:  "dangling-customer",
			ProductID:   "dangling-product",
			TotalAmount: decimal.NewFromInt(5000),
			DownPayment: decimal.NewFromInt(5000),
		},
	}
	installments := []domain.Installment{
		{InstallmentID: "i1", SaleID: "s1", Amount: decimal.NewFromInt(6000), Status: domain.InstallmentPaid},
		{InstallmentID: "i2", SaleID: "s1", Amount: decimal.NewFromInt(6000), Status: domain.InstallmentPending, DueDate: time.Now().UTC().AddDate(0, 1, 0)},
	}
	entries := []domain.Transaction{
		{Type: domain.TransactionIncome, Amount: decimal.NewFromInt(19000)},
		{Type: domain.TransactionExpense, Amount: decimal.NewFromInt(3000)},
		{Type: domain.TransactionWithdrawal, Amount: decimal.NewFromInt(1000)},
	}
	payouts := []domain.ProfitDistributionRecord{
		{Type: domain.DistributionCredit, Amount: decimal.NewFromInt(5400)},
		{Type: domain.DistributionWithdrawal, Amount: decimal.NewFromInt(2000)},
	}
	s.expectMonthlyData(sales, installments, entries, payouts)

	report, err := s.newService(nil).MonthlyReport(ctx, 8, 2026)

	s.Require().NoError(err)
	s.Equal("37000", report.SalesTotal.String())
	s.Equal("13000", report.DownPaymentsCollected.String())
	s.Equal(2, report.InvoiceCount)
	s.Equal("6000", report.InstallmentsCollected.String())
	s.Equal("6000", report.InstallmentsPending.String())
	s.Equal("19000", report.SafeIncome.String())
	s.Equal("3000", report.SafeExpense.String())
	// Net counts the withdrawal too: 19000 - 3000 - 1000.
	s.Equal("15000", report.SafeNet.String())
	// Only DISTRIBUTION rows count toward the distributed total.
	s.Equal("5400", report.DistributedTotal.String())
	s.Equal(1, report.DistributionCount)

	s.Equal(s.customer.Name, report.Sales[0].CustomerName)
	s.Equal(s.product.Name, report.Sales[0].ProductName)
	s.Equal(domain.UnknownCustomerName, report.Sales[1].CustomerName)
	s.Equal(domain.UnknownProductName, report.Sales[1].ProductName)
	s.Equal(s.customer.Name, report.Installments[0].CustomerName)
}

func (s *ReportingServiceTestSuite) TestMonthlyReportRejectsBadMonth() {
	ctx := context.Background()

	_, err := s.newService(nil).MonthlyReport(ctx, 13, 2026)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ReportingServiceTestSuite) TestDashboardStats() {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	s.mockSafeSvc.On("Balance", ctx).Return(decimal.NewFromInt(32600), nil).Once()
	s.mockSafeRepo.On("ListTransactionsByPeriod", ctx, 8, 2026).Return([]domain.Transaction{
		{Type: domain.TransactionIncome, Amount: decimal.NewFromInt(7000)},
		{Type: domain.TransactionExpense, Amount: decimal.NewFromInt(1500)},
	}, nil).Once()
	s.mockCustomerRepo.On("CountCustomers", ctx).Return(42, nil).Once()
	s.mockCustomerRepo.On("SumOutstandingBalances", ctx).Return(decimal.NewFromInt(96000), nil).Once()
	s.mockInstallmentRepo.On("CountOverdue", ctx, now).Return(3, nil).Once()
	s.mockProductRepo.On("CountLowStock", ctx, 5).Return(2, nil).Once()

	stats, err := s.newService(nil).DashboardStats(ctx, now)

	s.Require().NoError(err)
	s.Equal("32600", stats.SafeBalance.String())
	s.Equal("7000", stats.MonthIncome.String())
	s.Equal("1500", stats.MonthExpense.String())
	s.Equal(42, stats.CustomerCount)
	s.Equal("96000", stats.OutstandingTotal.String())
	s.Equal(3, stats.OverdueInstallments)
	s.Equal(2, stats.LowStockProducts)
}

func (s *ReportingServiceTestSuite) TestSendMonthlyReportWithoutMailer() {
	ctx := context.Background()

	err := s.newService(nil).SendMonthlyReport(ctx, "owner@example.com", 8, 2026)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnavailable)
}

func (s *ReportingServiceTestSuite) TestSendMonthlyReportRendersHTML() {
	ctx := context.Background()
	s.expectMonthlyData(nil, nil, nil, nil)

	var sentBody string
	s.mockMailer.On("Send", ctx, "owner@example.com", "Monthly report 2026-08", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			sentBody = args.Get(3).(string)
		}).Return(nil).Once()

	err := s.newService(s.mockMailer).SendMonthlyReport(ctx, "owner@example.com", 8, 2026)

	s.Require().NoError(err)
	s.Contains(sentBody, "Monthly report 2026-08")
	s.Contains(sentBody, "Sales total")
	s.mockMailer.AssertExpectations(s.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
