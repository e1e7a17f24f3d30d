package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rostech/erp-backend/internal/core/domain"
	"github.com/rostech/erp-backend/internal/core/ports/repositories"
)

type safeRepository struct {
	pool *pgxpool.Pool
}

// NewSafeRepository creates a new repository for the cash ledger.
func NewSafeRepository(pool *pgxpool.Pool) repositories.SafeRepositoryFacade {
	return &safeRepository{pool: pool}
}

const transactionColumns = `transaction_id, type, category, amount, date, description, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// transactionArgs orders an entry's fields to match insertTransactionQuery.
// Shared with the sale, installment and partner repositories, which post
// ledger entries inside their own database transactions.
func transactionArgs(entry domain.Transaction) []any {
	return []any{
		entry.TransactionID,
		entry.Type,
		entry.Category,
		entry.Amount,
		entry.Date,
		entry.Description,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	}
}

// SaveTransaction appends one ledger entry. The ledger is append-only;
// there is no update or delete.
func (r *safeRepository) SaveTransaction(ctx context.Context, entry domain.Transaction) error {
	if _, err := r.pool.Exec(ctx, insertTransactionQuery, transactionArgs(entry)...); err != nil {
		return fmt.Errorf("failed to save safe entry %s: %w", entry.TransactionID, err)
	}
	return nil
}

// ListTransactions retrieves all ledger entries, newest first.
func (r *safeRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC, created_at DESC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query safe entries: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListTransactionsByPeriod retrieves the entries dated in one calendar month.
func (r *safeRepository) ListTransactionsByPeriod(ctx context.Context, month int, year int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date, created_at;
	`
	rows, err := r.pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query safe entries for %d-%d: %w", year, month, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// SumByTypeExcludingCategories totals the posted amounts per entry type,
// skipping entries whose category is in excludedCategories. Types with no
// entries are absent from the map; callers rely on decimal's zero value.
func (r *safeRepository) SumByTypeExcludingCategories(ctx context.Context, excludedCategories []string) (map[domain.TransactionType]decimal.Decimal, error) {
	if excludedCategories == nil {
		excludedCategories = []string{}
	}
	query := `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE NOT (category = ANY($1))
		GROUP BY type;
	`
	rows, err := r.pool.Query(ctx, query, excludedCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to sum safe entries: %w", err)
	}
	defer rows.Close()

	totals := make(map[domain.TransactionType]decimal.Decimal, 3)
	for rows.Next() {
		var entryType domain.TransactionType
		var total decimal.Decimal
		if err := rows.Scan(&entryType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan safe entry sum: %w", err)
		}
		totals[entryType] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating safe entry sums: %w", err)
	}
	return totals, nil
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	entries := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.TransactionID,
			&t.Type,
			&t.Category,
			&t.Amount,
			&t.Date,
			&t.Description,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan safe entry row: %w", err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating safe entry rows: %w", err)
	}
	return entries, nil
}
