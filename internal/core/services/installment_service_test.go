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
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/core/services"
)

type InstallmentServiceTestSuite struct {
	suite.Suite
	mockInstallmentRepo *MockInstallmentRepository
	mockSaleRepo        *MockSaleRepository
	mockCustomerRepo    *MockCustomerRepository
	service             portssvc.InstallmentSvcFacade

	userID      string
	customer    domain.Customer
	sale        domain.Sale
	installment domain.Installment
}

func (s *InstallmentServiceTestSuite) SetupTest() {
	s.mockInstallmentRepo = new(MockInstallmentRepository)
	s.mockSaleRepo = new(MockSaleRepository)
	s.mockCustomerRepo = new(MockCustomerRepository)
	s.service = services.NewInstallmentService(s.mockInstallmentRepo, s.mockSaleRepo, s.mockCustomerRepo)

	s.userID = uuid.NewString()
	s.customer = domain.Customer{CustomerID: uuid.NewString(), Name: "Mehmet Kaya"}
	s.sale = domain.Sale{SaleID: uuid.NewString(), CustomerID: s.customer.CustomerID}
	s.installment = domain.Installment{
		InstallmentID: uuid.NewString(),
		SaleID:        s.sale.SaleID,
		Amount:        decimal.NewFromInt(6000),
		Status:        domain.InstallmentPending,
		DueDate:       time.Now().UTC().AddDate(0, 1, 0),
	}
}

func (s *InstallmentServiceTestSuite) TestCollectSuccess() {
	ctx := context.Background()

	s.mockInstallmentRepo.On("FindInstallmentByID", ctx, s.installment.InstallmentID).Return(&s.installment, nil).Once()
	s.mockSaleRepo.On("FindSaleByID", ctx, s.sale.SaleID).Return(&s.sale, nil).Once()
	s.mockCustomerRepo.On("FindCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()

	var capturedEntry domain.Transaction
	s.mockInstallmentRepo.On("CollectInstallment", ctx, s.installment.InstallmentID, s.customer.CustomerID, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			capturedEntry = args.Get(3).(domain.Transaction)
		}).Return(nil).Once()

	collected, err := s.service.Collect(ctx, s.installment.InstallmentID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.InstallmentPaid, collected.Status)

	s.Equal(domain.TransactionIncome, capturedEntry.Type)
	s.Equal(domain.CategoryInstallmentCollection, capturedEntry.Category)
	s.True(capturedEntry.Amount.Equal(s.installment.Amount))
	s.Contains(capturedEntry.Description, s.customer.Name)

	s.mockInstallmentRepo.AssertExpectations(s.T())
}

func (s *InstallmentServiceTestSuite) TestCollectTwiceFailsWithoutPosting() {
	ctx := context.Background()
	s.installment.Status = domain.InstallmentPaid

	s.mockInstallmentRepo.On("FindInstallmentByID", ctx, s.installment.InstallmentID).Return(&s.installment, nil).Once()

	_, err := s.service.Collect(ctx, s.installment.InstallmentID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, services.ErrAlreadyCollected)
	s.mockInstallmentRepo.AssertNotCalled(s.T(), "CollectInstallment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InstallmentServiceTestSuite) TestCollectLosesRaceToConcurrentCollect() {
	ctx := context.Background()

	s.mockInstallmentRepo.On("FindInstallmentByID", ctx, s.installment.InstallmentID).Return(&s.installment, nil).Once()
	s.mockSaleRepo.On("FindSaleByID", ctx, s.sale.SaleID).Return(&s.sale, nil).Once()
	s.mockCustomerRepo.On("FindCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()
	s.mockInstallmentRepo.On("CollectInstallment", ctx, s.installment.InstallmentID, s.customer.CustomerID, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	_, err := s.service.Collect(ctx, s.installment.InstallmentID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *InstallmentServiceTestSuite) TestCollectNotFound() {
	ctx := context.Background()

	s.mockInstallmentRepo.On("FindInstallmentByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Collect(ctx, "missing", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *InstallmentServiceTestSuite) TestListInstallmentsDerivesOverdue() {
	ctx := context.Background()
	now := time.Now().UTC()

	pastDue := s.installment
	pastDue.DueDate = now.AddDate(0, -1, 0)

	paid := s.installment
	paid.InstallmentID = uuid.NewString()
	paid.Status = domain.InstallmentPaid
	paid.DueDate = now.AddDate(0, -2, 0)

	s.mockInstallmentRepo.On("ListInstallments", ctx).Return([]domain.Installment{pastDue, paid}, nil).Once()
	s.mockSaleRepo.On("ListSales", ctx).Return([]domain.Sale{s.sale}, nil).Once()
	s.mockCustomerRepo.On("ListCustomers", ctx).Return([]domain.Customer{s.customer}, nil).Once()

	rows, err := s.service.ListInstallments(ctx, now)

	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	// Pending and past due reads as OVERDUE; paid stays PAID even past due.
	s.Equal(domain.InstallmentOverdue, rows[0].EffectiveStatus)
	s.Equal(domain.InstallmentPaid, rows[1].EffectiveStatus)
	s.Equal(s.customer.Name, rows[0].CustomerName)
}

func (s *InstallmentServiceTestSuite) TestListOverdueFilters() {
	ctx := context.Background()
	now := time.Now().UTC()

	pastDue := s.installment
	pastDue.DueDate = now.AddDate(0, -1, 0)

	future := s.installment
	future.InstallmentID = uuid.NewString()
	future.DueDate = now.AddDate(0, 1, 0)

	s.mockInstallmentRepo.On("ListInstallments", ctx).Return([]domain.Installment{pastDue, future}, nil).Once()
	s.mockSaleRepo.On("ListSales", ctx).Return([]domain.Sale{s.sale}, nil).Once()
	s.mockCustomerRepo.On("ListCustomers", ctx).Return([]domain.Customer{s.customer}, nil).Once()

	rows, err := s.service.ListOverdue(ctx, now)

	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(pastDue.InstallmentID, rows[0].InstallmentID)
}

func TestInstallmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InstallmentServiceTestSuite))
}
