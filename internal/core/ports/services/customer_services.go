package services

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/dto"
)

// CustomerSvcFacade defines the customer operations exposed to transport.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}
