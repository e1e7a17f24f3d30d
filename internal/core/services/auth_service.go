package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
	"github.com/rostech/erp-backend/internal/utils"
)

// ErrInvalidCredentials is returned for both a missing account and a wrong
// password so login responses do not leak which emails exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and returns the user together with a
// signed JWT carrying the role claim.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown email", slog.String("email", email))
			return nil, "", fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidCredentials)
		}
		s.LogError(ctx, err, "Failed to look up user for login", slog.String("email", email))
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, "", fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidCredentials)
	}

	token, err := utils.GenerateJWT(user.UserID, user.Role, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("user_id", user.UserID))
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return user, token, nil
}
