package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rostech/erp-backend/internal/apperrors"
	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/core/ports/repositories"
)

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new repository for customer data.
func NewCustomerRepository(pool *pgxpool.Pool) repositories.CustomerRepositoryFacade {
	return &customerRepository{pool: pool}
}

const customerColumns = `customer_id, name, phone, address, outstanding_balance, join_date, created_at, created_by, last_updated_at, last_updated_by`

// SaveCustomer inserts a new customer.
func (r *customerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Phone,
		customer.Address,
		customer.OutstandingBalance,
		customer.JoinDate,
		customer.CreatedAt,
		customer.CreatedBy,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *customerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	var c domain.Customer
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&c.CustomerID,
		&c.Name,
		&c.Phone,
		&c.Address,
		&c.OutstandingBalance,
		&c.JoinDate,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return &c, nil
}

// ListCustomers retrieves all customers ordered by name.
func (r *customerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.CustomerID,
			&c.Name,
			&c.Phone,
			&c.Address,
			&c.OutstandingBalance,
			&c.JoinDate,
			&c.CreatedAt,
			&c.CreatedBy,
			&c.LastUpdatedAt,
			&c.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

// UpdateCustomer updates the customer's contact fields. The outstanding
// balance is deliberately not written here; the sale and installment
// repositories own it.
func (r *customerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, address = $4, last_updated_at = $5, last_updated_by = $6
		WHERE customer_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Phone,
		customer.Address,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer by ID.
func (r *customerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountCustomers returns the number of registered customers.
func (r *customerRepository) CountCustomers(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// SumOutstandingBalances returns the total principal owed across all customers.
func (r *customerRepository) SumOutstandingBalances(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(outstanding_balance), 0) FROM customers;`
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding balances: %w", err)
	}
	return total, nil
}
