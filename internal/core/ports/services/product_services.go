package services

import (
	"context"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/dto"
)

// ProductSvcFacade defines the product operations exposed to transport.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	AdjustStock(ctx context.Context, productID string, delta int, updaterUserID string) (*domain.Product, error)
}
