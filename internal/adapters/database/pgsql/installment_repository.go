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

type installmentRepository struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepository creates a new repository for installment data.
func NewInstallmentRepository(pool *pgxpool.Pool) repositories.InstallmentRepositoryFacade {
	return &installmentRepository{pool: pool}
}

// FindInstallmentByID retrieves an installment by its ID.
func (r *installmentRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE installment_id = $1;`

	var inst domain.Installment
	err := r.pool.QueryRow(ctx, query, installmentID).Scan(
		&inst.InstallmentID,
		&inst.SaleID,
		&inst.DueDate,
		&inst.Amount,
		&inst.Status,
		&inst.CreatedAt,
		&inst.CreatedBy,
		&inst.LastUpdatedAt,
		&inst.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment by ID %s: %w", installmentID, err)
	}
	return &inst, nil
}

// ListInstallments retrieves all installments ordered by due date.
func (r *installmentRepository) ListInstallments(ctx context.Context) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments ORDER BY due_date;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()
	return scanInstallments(rows)
}

// ListInstallmentsBySaleID retrieves one sale's schedule in due-date order.
func (r *installmentRepository) ListInstallmentsBySaleID(ctx context.Context, saleID string) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE sale_id = $1 ORDER BY due_date;`
	rows, err := r.pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for sale %s: %w", saleID, err)
	}
	defer rows.Close()
	return scanInstallments(rows)
}

// ListInstallmentsByPeriod retrieves installments due in one calendar month.
func (r *installmentRepository) ListInstallmentsByPeriod(ctx context.Context, month int, year int) ([]domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE EXTRACT(MONTH FROM due_date) = $1 AND EXTRACT(YEAR FROM due_date) = $2
		ORDER BY due_date;
	`
	rows, err := r.pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for %d-%d: %w", year, month, err)
	}
	defer rows.Close()
	return scanInstallments(rows)
}

// CollectInstallment marks the installment PAID, posts the income entry and
// lowers the customer's outstanding balance, all in one database
// transaction. The status flip is guarded by WHERE status = 'PENDING': a
// concurrent collect loses the race, matches no row and gets ErrConflict,
// so the ledger can never double-count a payment.
func (r *installmentRepository) CollectInstallment(ctx context.Context, installmentID string, customerID string, entry domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	statusQuery := `
		UPDATE installments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE installment_id = $1 AND status = $5;
	`
	tag, err := tx.Exec(ctx, statusQuery,
		installmentID,
		domain.InstallmentPaid,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		domain.InstallmentPending,
	)
	if err != nil {
		return fmt.Errorf("failed to mark installment %s paid: %w", installmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: installment %s is not pending", apperrors.ErrConflict, installmentID)
	}

	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(entry)...); err != nil {
		return fmt.Errorf("failed to insert collection entry for installment %s: %w", installmentID, err)
	}

	balanceQuery := `
		UPDATE customers
		SET outstanding_balance = GREATEST(0, outstanding_balance - $2), last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1;
	`
	if _, err := tx.Exec(ctx, balanceQuery, customerID, entry.Amount, entry.LastUpdatedAt, entry.LastUpdatedBy); err != nil {
		return fmt.Errorf("failed to lower outstanding balance for customer %s: %w", customerID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit collection for installment %s: %w", installmentID, err)
	}
	return nil
}

// CountOverdue returns how many installments are unpaid and past due at now.
func (r *installmentRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM installments WHERE status = $1 AND due_date < $2;`
	if err := r.pool.QueryRow(ctx, query, domain.InstallmentPending, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count overdue installments: %w", err)
	}
	return count, nil
}

func scanInstallments(rows pgx.Rows) ([]domain.Installment, error) {
	installments := []domain.Installment{}
	for rows.Next() {
		var inst domain.Installment
		if err := rows.Scan(
			&inst.InstallmentID,
			&inst.SaleID,
			&inst.DueDate,
			&inst.Amount,
			&inst.Status,
			&inst.CreatedAt,
			&inst.CreatedBy,
			&inst.LastUpdatedAt,
			&inst.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", err)
	}
	return installments, nil
}
