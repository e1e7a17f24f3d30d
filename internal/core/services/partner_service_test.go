package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/core/services"
	"github.com/rostech/erp-backend/internal/dto"
)

type PartnerServiceTestSuite struct {
	suite.Suite
	mockPartnerRepo *MockPartnerRepository
	mockSafeSvc     *MockSafeService
	service         portssvc.PartnerSvcFacade

	userID   string
	partners []domain.Partner
}

func (s *PartnerServiceTestSuite) SetupTest() {
	s.mockPartnerRepo = new(MockPartnerRepository)
	s.mockSafeSvc = new(MockSafeService)
	s.service = services.NewPartnerService(s.mockPartnerRepo, s.mockSafeSvc)

	s.userID = uuid.NewString()
	s.partners = []domain.Partner{
		{PartnerID: uuid.NewString(), Name: "Hasan Demir", SharePercentage: decimal.NewFromInt(60)},
		{PartnerID: uuid.NewString(), Name: "Fatma Demir", SharePercentage: decimal.NewFromInt(20)},
		{PartnerID: uuid.NewString(), Name: "Ali Demir", SharePercentage: decimal.NewFromInt(20)},
	}
}

func (s *PartnerServiceTestSuite) TestDistributeCreditsByShare() {
	ctx := context.Background()

	s.mockPartnerRepo.On("ListPartners", ctx).Return(s.partners, nil).Once()

	var savedRecords []domain.ProfitDistributionRecord
	s.mockPartnerRepo.On("Distribute", ctx, mock.AnythingOfType("[]domain.ProfitDistributionRecord")).
		Run(func(args mock.Arguments) {
			savedRecords = args.Get(1).([]domain.ProfitDistributionRecord)
		}).Return(nil).Once()

	records, err := s.service.Distribute(ctx, decimal.NewFromInt(27000), s.userID)

	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(records, savedRecords)

	// 27000 split 60/20/20: 16200 plus two credits of 5400.
	s.Equal("16200", records[0].Amount.String())
	s.Equal("5400", records[1].Amount.String())
	s.Equal("5400", records[2].Amount.String())
	for i, record := range records {
		s.Equal(domain.DistributionCredit, record.Type)
		s.Equal(s.partners[i].PartnerID, record.PartnerID)
		s.Equal(s.partners[i].Name, record.PartnerName)
	}
}

func (s *PartnerServiceTestSuite) TestDistributeRequiresPartners() {
	ctx := context.Background()
	s.mockPartnerRepo.On("ListPartners", ctx).Return([]domain.Partner{}, nil).Once()

	_, err := s.service.Distribute(ctx, decimal.NewFromInt(1000), s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrNoPartners)
	s.mockPartnerRepo.AssertNotCalled(s.T(), "Distribute", mock.Anything, mock.Anything)
}

func (s *PartnerServiceTestSuite) TestDistributeRejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := s.service.Distribute(ctx, decimal.Zero, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrNonPositiveAmount)
	s.mockPartnerRepo.AssertNotCalled(s.T(), "ListPartners", mock.Anything)
}

func (s *PartnerServiceTestSuite) TestDistributeSkipsZeroSharePartners() {
	ctx := context.Background()
	s.partners[2].SharePercentage = decimal.Zero
	s.mockPartnerRepo.On("ListPartners", ctx).Return(s.partners, nil).Once()
	s.mockPartnerRepo.On("Distribute", ctx, mock.Anything).Return(nil).Once()

	records, err := s.service.Distribute(ctx, decimal.NewFromInt(1000), s.userID)

	s.Require().NoError(err)
	s.Require().Len(records, 2)
}

func (s *PartnerServiceTestSuite) TestCreatePartnerRejectsShareSumOverHundred() {
	ctx := context.Background()
	s.mockPartnerRepo.On("ListPartners", ctx).Return(s.partners, nil).Once()

	req := dto.CreatePartnerRequest{Name: "Fourth Partner", SharePercentage: decimal.NewFromInt(5)}
	_, err := s.service.CreatePartner(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrShareSumExceeded)
	s.mockPartnerRepo.AssertNotCalled(s.T(), "SavePartner", mock.Anything, mock.Anything)
}

func (s *PartnerServiceTestSuite) TestUpdatePartnerExcludesOwnShareFromSum() {
	ctx := context.Background()
	target := s.partners[0]

	s.mockPartnerRepo.On("FindPartnerByID", ctx, target.PartnerID).Return(&target, nil).Once()
	s.mockPartnerRepo.On("ListPartners", ctx).Return(s.partners, nil).Once()
	s.mockPartnerRepo.On("UpdatePartner", ctx, mock.AnythingOfType("domain.Partner")).Return(nil).Once()

	// Raising 60 to 55 keeps the sum at 95 because the old share is excluded.
	newShare := decimal.NewFromInt(55)
	req := dto.UpdatePartnerRequest{SharePercentage: &newShare}
	updated, err := s.service.UpdatePartner(ctx, target.PartnerID, req, s.userID)

	s.Require().NoError(err)
	s.True(updated.SharePercentage.Equal(newShare))
}

func (s *PartnerServiceTestSuite) TestWithdrawRejectsBeyondBalance() {
	ctx := context.Background()
	partner := s.partners[1]
	partner.CurrentBalance = decimal.NewFromInt(5400)

	s.mockPartnerRepo.On("FindPartnerByID", ctx, partner.PartnerID).Return(&partner, nil).Once()

	_, err := s.service.Withdraw(ctx, partner.PartnerID, decimal.NewFromInt(5500), s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(err, services.ErrInsufficientBalance)
	s.mockPartnerRepo.AssertNotCalled(s.T(), "Withdraw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PartnerServiceTestSuite) TestWithdrawWithinRoundingTolerance() {
	ctx := context.Background()
	partner := s.partners[1]
	partner.CurrentBalance = decimal.RequireFromString("5399.95")
	amount := decimal.NewFromInt(5400)

	s.mockPartnerRepo.On("FindPartnerByID", ctx, partner.PartnerID).Return(&partner, nil).Once()

	var capturedEntry domain.Transaction
	var capturedRecord domain.ProfitDistributionRecord
	s.mockPartnerRepo.On("Withdraw", ctx, partner.PartnerID, amount, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.ProfitDistributionRecord")).
		Run(func(args mock.Arguments) {
			capturedEntry = args.Get(3).(domain.Transaction)
			capturedRecord = args.Get(4).(domain.ProfitDistributionRecord)
		}).Return(nil).Once()

	updated, err := s.service.Withdraw(ctx, partner.PartnerID, amount, s.userID)

	s.Require().NoError(err)
	// The wallet never goes negative, even when tolerance let the payout through.
	s.True(updated.CurrentBalance.IsZero())
	s.True(updated.TotalWithdrawn.Equal(amount))

	s.Equal(domain.TransactionWithdrawal, capturedEntry.Type)
	s.Equal(domain.CategoryProfitDistribution, capturedEntry.Category)
	s.True(capturedEntry.Amount.Equal(amount))

	s.Equal(domain.DistributionWithdrawal, capturedRecord.Type)
	s.True(capturedRecord.Amount.Equal(amount))
}

func (s *PartnerServiceTestSuite) TestWithdrawRejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := s.service.Withdraw(ctx, s.partners[0].PartnerID, decimal.NewFromInt(-5), s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrNonPositiveAmount)
}

func (s *PartnerServiceTestSuite) TestProfitSummaryDelegatesToSafe() {
	ctx := context.Background()
	s.mockSafeSvc.On("OperatingProfit", ctx).
		Return(decimal.NewFromInt(40000), decimal.NewFromInt(13000), decimal.NewFromInt(27000), nil).Once()

	summary, err := s.service.ProfitSummary(ctx)

	s.Require().NoError(err)
	s.Equal("40000", summary.TotalIncome.String())
	s.Equal("13000", summary.OperatingExpense.String())
	s.Equal("27000", summary.NetOperatingProfit.String())
}

func TestPartnerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerServiceTestSuite))
}
