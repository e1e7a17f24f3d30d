package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/dto"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct adds a product to the catalog.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	if req.SellPrice.IsNegative() || req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      req.Name,
		CostPrice: req.CostPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("product_name", req.Name))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

// GetProductByID retrieves a single product.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product", slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

// ListProducts retrieves the full catalog.
func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies name and price changes. Stock moves only through
// AdjustStock so the non-negative guard applies atomically.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, fmt.Errorf("%w: cost price must not be negative", apperrors.ErrValidation)
		}
		product.CostPrice = *req.CostPrice
	}
	if req.SellPrice != nil {
		if req.SellPrice.IsNegative() {
			return nil, fmt.Errorf("%w: sell price must not be negative", apperrors.ErrValidation)
		}
		product.SellPrice = *req.SellPrice
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = updaterUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete product", slog.String("product_id", productID))
		}
		return err
	}
	s.LogInfo(ctx, "Product deleted", slog.String("product_id", productID))
	return nil
}

// AdjustStock applies a signed delta to a product's stock. A delta that
// would take the stock below zero fails with apperrors.ErrConflict.
func (s *productService) AdjustStock(ctx context.Context, productID string, delta int, updaterUserID string) (*domain.Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: stock adjustment must not be zero", apperrors.ErrValidation)
	}

	product, err := s.productRepo.AdjustStock(ctx, productID, delta, updaterUserID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to adjust stock", slog.String("product_id", productID), slog.Int("delta", delta))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Stock adjusted", slog.String("product_id", productID), slog.Int("delta", delta), slog.Int("stock", product.Stock))
	return product, nil
}
