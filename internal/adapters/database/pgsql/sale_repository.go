package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/core/ports/repositories"
)

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new repository for sale data.
func NewSaleRepository(pool *pgxpool.Pool) repositories.SaleRepositoryFacade {
	return &saleRepository{pool: pool}
}

const saleColumns = `sale_id, customer_id, product_id, payment_method, total_amount, down_payment, installments_count, sale_date, created_at, created_by, last_updated_at, last_updated_by`

const installmentColumns = `installment_id, sale_id, due_date, amount, status, created_at, created_by, last_updated_at, last_updated_by`

// SaveSale persists a sale with all of its side effects in one database
// transaction: the installment schedule, the down-payment ledger entry,
// the stock decrement (guarded against going negative) and the customer's
// outstanding-balance increment by the financed principal.
func (r *saleRepository) SaveSale(ctx context.Context, sale domain.Sale, installments []domain.Installment, downPaymentEntry *domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	saleQuery := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, saleQuery,
		sale.SaleID,
		sale.CustomerID,
		sale.ProductID,
		sale.PaymentMethod,
		sale.TotalAmount,
		sale.DownPayment,
		sale.InstallmentsCount,
		sale.SaleDate,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale %s: %w", sale.SaleID, err)
	}

	if len(installments) > 0 {
		batch := &pgx.Batch{}
		instQuery := `
			INSERT INTO installments (` + installmentColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		for _, inst := range installments {
			batch.Queue(instQuery,
				inst.InstallmentID,
				inst.SaleID,
				inst.DueDate,
				inst.Amount,
				inst.Status,
				inst.CreatedAt,
				inst.CreatedBy,
				inst.LastUpdatedAt,
				inst.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert installments for sale %s: %w", sale.SaleID, err)
		}
	}

	if downPaymentEntry != nil {
		if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(*downPaymentEntry)...); err != nil {
			return fmt.Errorf("failed to insert down-payment entry for sale %s: %w", sale.SaleID, err)
		}
	}

	stockQuery := `
		UPDATE products
		SET stock = stock - 1, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1 AND stock > 0;
	`
	tag, err := tx.Exec(ctx, stockQuery, sale.ProductID, sale.LastUpdatedAt, sale.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for sale %s: %w", sale.SaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s is out of stock", apperrors.ErrConflict, sale.ProductID)
	}

	financed := sale.FinancedAmount()
	if financed.IsPositive() {
		balanceQuery := `
			UPDATE customers
			SET outstanding_balance = outstanding_balance + $2, last_updated_at = $3, last_updated_by = $4
			WHERE customer_id = $1;
		`
		tag, err := tx.Exec(ctx, balanceQuery, sale.CustomerID, financed, sale.LastUpdatedAt, sale.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to raise outstanding balance for sale %s: %w", sale.SaleID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, sale.CustomerID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sale %s: %w", sale.SaleID, err)
	}
	return nil
}

// FindSaleByID retrieves a sale by its ID.
func (r *saleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`

	var s domain.Sale
	err := r.pool.QueryRow(ctx, query, saleID).Scan(
		&s.SaleID,
		&s.CustomerID,
		&s.ProductID,
		&s.PaymentMethod,
		&s.TotalAmount,
		&s.DownPayment,
		&s.InstallmentsCount,
		&s.SaleDate,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	return &s, nil
}

// ListSales retrieves all sales, newest first.
func (r *saleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// ListSalesByPeriod retrieves the sales dated in one calendar month.
func (r *saleRepository) ListSalesByPeriod(ctx context.Context, month int, year int) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE EXTRACT(MONTH FROM sale_date) = $1 AND EXTRACT(YEAR FROM sale_date) = $2
		ORDER BY sale_date;
	`
	rows, err := r.pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales for %d-%d: %w", year, month, err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(
			&s.SaleID,
			&s.CustomerID,
			&s.ProductID,
			&s.PaymentMethod,
			&s.TotalAmount,
			&s.DownPayment,
			&s.InstallmentsCount,
			&s.SaleDate,
			&s.CreatedAt,
			&s.CreatedBy,
			&s.LastUpdatedAt,
			&s.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}
	return sales, nil
}
