package repositories

import (
	"context"
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
)

// ProductRepositoryFacade defines persistence operations for products.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	// AdjustStock applies a signed delta to the product's stock and returns
	// the updated product. The stored stock never goes below zero; an
	// adjustment that would do so fails with apperrors.ErrConflict.
	AdjustStock(ctx context.Context, productID string, delta int, updatedBy string, updatedAt time.Time) (*domain.Product, error)
	CountLowStock(ctx context.Context, threshold int) (int, error)
}
