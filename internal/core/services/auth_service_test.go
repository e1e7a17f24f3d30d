package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/core/services"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/rostech/erp-backend/internal/utils"
)

const testJWTSecret = "test-secret-key"

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade

	password string
	user     domain.User
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewAuthService(s.mockUserRepo, testJWTSecret, time.Hour, "erp-backend")

	s.password = "correct-horse-battery"
	hash, err := utils.HashPassword(s.password)
	s.Require().NoError(err)
	s.user = domain.User{
		UserID:       uuid.NewString(),
		Name:         "Store Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, s.user.Email).Return(&s.user, nil).Once()

	user, token, err := s.service.Login(ctx, dto.LoginRequest{Email: s.user.Email, Password: s.password})

	s.Require().NoError(err)
	s.Equal(s.user.UserID, user.UserID)

	claims, err := utils.ParseAndValidateJWT(token, testJWTSecret)
	s.Require().NoError(err)
	s.Equal(s.user.UserID, claims.Subject)
	s.Equal(string(s.user.Role), claims.Role)
}

func (s *AuthServiceTestSuite) TestLoginNormalizesEmail() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, s.user.Email).Return(&s.user, nil).Once()

	_, _, err := s.service.Login(ctx, dto.LoginRequest{Email: "  Admin@Example.COM ", Password: s.password})

	s.Require().NoError(err)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, s.user.Email).Return(&s.user, nil).Once()

	_, _, err := s.service.Login(ctx, dto.LoginRequest{Email: s.user.Email, Password: "wrong"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginUnknownEmailGetsSameError() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := s.service.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	s.Require().Error(err)
	// Same error as a wrong password so responses do not leak which emails exist.
	s.ErrorIs(err, services.ErrInvalidCredentials)
	s.NotErrorIs(err, apperrors.ErrNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade

	creatorID string
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockUserRepo)
	s.creatorID = uuid.NewString()
}

func (s *UserServiceTestSuite) TestCreateUserSuccess() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "New Cashier",
		Email:    "Cashier@Example.com",
		Password: "super-secret-pw",
		Role:     "CASHIER",
	}

	s.mockUserRepo.On("FindUserByEmail", ctx, "cashier@example.com").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.User)
	}).Return(nil).Once()

	user, err := s.service.CreateUser(ctx, req, s.creatorID)

	s.Require().NoError(err)
	s.Equal("cashier@example.com", user.Email)
	s.Equal(domain.RoleCashier, user.Role)
	s.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	s.NotEqual(req.Password, saved.PasswordHash)
}

func (s *UserServiceTestSuite) TestCreateUserDuplicateEmail() {
	ctx := context.Background()
	existing := domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}
	req := dto.CreateUserRequest{
		Name:     "Second Account",
		Email:    "taken@example.com",
		Password: "super-secret-pw",
		Role:     "ACCOUNTANT",
	}

	s.mockUserRepo.On("FindUserByEmail", ctx, "taken@example.com").Return(&existing, nil).Once()

	_, err := s.service.CreateUser(ctx, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUserRejectsUnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Nobody",
		Email:    "nobody@example.com",
		Password: "super-secret-pw",
		Role:     "MANAGER",
	}

	_, err := s.service.CreateUser(ctx, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestUpdateUserRole() {
	ctx := context.Background()
	user := domain.User{UserID: uuid.NewString(), Name: "Promoted", Role: domain.RoleCashier}
	newRole := "ACCOUNTANT"

	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(&user, nil).Once()
	s.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := s.service.UpdateUser(ctx, user.UserID, dto.UpdateUserRequest{Role: &newRole}, s.creatorID)

	s.Require().NoError(err)
	s.Equal(domain.RoleAccountant, updated.Role)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
