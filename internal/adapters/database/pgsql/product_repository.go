package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/core/ports/repositories"
)

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new repository for product data.
func NewProductRepository(pool *pgxpool.Pool) repositories.ProductRepositoryFacade {
	return &productRepository{pool: pool}
}

const productColumns = `product_id, name, cost_price, sell_price, stock, created_at, created_by, last_updated_at, last_updated_by`

// SaveProduct inserts a new product.
func (r *productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.CostPrice,
		product.SellPrice,
		product.Stock,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *productRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&p.ProductID,
		&p.Name,
		&p.CostPrice,
		&p.SellPrice,
		&p.Stock,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return &p, nil
}

// ListProducts retrieves the full catalog ordered by name.
func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ProductID,
			&p.Name,
			&p.CostPrice,
			&p.SellPrice,
			&p.Stock,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// UpdateProduct updates name and price fields. Stock moves only through
// AdjustStock and the sale repository so the non-negative guard holds.
func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, cost_price = $3, sell_price = $4, last_updated_at = $5, last_updated_by = $6
		WHERE product_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.CostPrice,
		product.SellPrice,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product by ID.
func (r *productRepository) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed delta to the stock and returns the updated
// product. The WHERE clause keeps the stored stock non-negative: a delta
// that would push it below zero matches no row and surfaces as ErrConflict.
func (r *productRepository) AdjustStock(ctx context.Context, productID string, delta int, updatedBy string, updatedAt time.Time) (*domain.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1 AND stock + $2 >= 0
		RETURNING ` + productColumns + `;
	`
	var p domain.Product
	err := r.pool.QueryRow(ctx, query, productID, delta, updatedAt, updatedBy).Scan(
		&p.ProductID,
		&p.Name,
		&p.CostPrice,
		&p.SellPrice,
		&p.Stock,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the product is missing or the delta would go negative.
			if _, findErr := r.FindProductByID(ctx, productID); errors.Is(findErr, apperrors.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("%w: stock adjustment of %d would go below zero", apperrors.ErrConflict, delta)
		}
		return nil, fmt.Errorf("failed to adjust stock for product %s: %w", productID, err)
	}
	return &p, nil
}

// CountLowStock returns how many products have stock at or below threshold.
func (r *productRepository) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM products WHERE stock <= $1;`
	if err := r.pool.QueryRow(ctx, query, threshold).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low-stock products: %w", err)
	}
	return count, nil
}
