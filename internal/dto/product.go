package dto

import (
	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SellPrice decimal.Decimal `json:"sellPrice" binding:"required"`
	Stock     int             `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Stock is not updatable here; use the stock adjustment endpoint so the
// non-negative guard applies atomically.
type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	CostPrice *decimal.Decimal `json:"costPrice"`
	SellPrice *decimal.Decimal `json:"sellPrice"`
}

// AdjustStockRequest carries a signed stock delta (restock or correction).
type AdjustStockRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Stock     int             `json:"stock"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		CostPrice: p.CostPrice,
		SellPrice: p.SellPrice,
		Stock:     p.Stock,
	}
}

// ToListProductResponse converts a slice of domain.Product to DTOs.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p)
	}
	return res
}
