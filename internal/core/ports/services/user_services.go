package services

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/dto"
)

// UserSvcFacade defines staff-user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AuthSvcFacade authenticates staff members.
type AuthSvcFacade interface {
	// Login verifies the credentials and returns the user with a signed JWT
	// carrying the user's role claim.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)
}
