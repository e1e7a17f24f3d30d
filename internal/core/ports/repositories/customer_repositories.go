package repositories

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerRepositoryFacade defines persistence operations for customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
	CountCustomers(ctx context.Context) (int, error)
	SumOutstandingBalances(ctx context.Context) (decimal.Decimal, error)
}
