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

type partnerRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository creates a new repository for partner data and the
// profit-distribution audit trail.
func NewPartnerRepository(pool *pgxpool.Pool) repositories.PartnerRepositoryFacade {
	return &partnerRepository{pool: pool}
}

const partnerColumns = `partner_id, name, share_percentage, current_balance, total_withdrawn, created_at, created_by, last_updated_at, last_updated_by`

const distributionColumns = `record_id, partner_id, partner_name, amount, type, date, created_at, created_by, last_updated_at, last_updated_by`

const insertDistributionQuery = `
	INSERT INTO profit_distribution_records (` + distributionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func distributionArgs(record domain.ProfitDistributionRecord) []any {
	return []any{
		record.RecordID,
		record.PartnerID,
		record.PartnerName,
		record.Amount,
		record.Type,
		record.Date,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	}
}

// SavePartner inserts a new partner.
func (r *partnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		partner.PartnerID,
		partner.Name,
		partner.SharePercentage,
		partner.CurrentBalance,
		partner.TotalWithdrawn,
		partner.CreatedAt,
		partner.CreatedBy,
		partner.LastUpdatedAt,
		partner.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save partner %s: %w", partner.PartnerID, err)
	}
	return nil
}

// FindPartnerByID retrieves a partner by its ID.
func (r *partnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE partner_id = $1;`

	var p domain.Partner
	err := r.pool.QueryRow(ctx, query, partnerID).Scan(
		&p.PartnerID,
		&p.Name,
		&p.SharePercentage,
		&p.CurrentBalance,
		&p.TotalWithdrawn,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner by ID %s: %w", partnerID, err)
	}
	return &p, nil
}

// ListPartners retrieves all partners ordered by name.
func (r *partnerRepository) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		var p domain.Partner
		if err := rows.Scan(
			&p.PartnerID,
			&p.Name,
			&p.SharePercentage,
			&p.CurrentBalance,
			&p.TotalWithdrawn,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", err)
	}
	return partners, nil
}

// UpdatePartner updates name and share. Wallet figures move only through
// Distribute and Withdraw.
func (r *partnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		UPDATE partners
		SET name = $2, share_percentage = $3, last_updated_at = $4, last_updated_by = $5
		WHERE partner_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		partner.PartnerID,
		partner.Name,
		partner.SharePercentage,
		partner.LastUpdatedAt,
		partner.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update partner %s: %w", partner.PartnerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Distribute credits each record's partner and appends the audit rows in
// one database transaction. No ledger entry is posted here: a distribution
// moves entitlement, not cash.
func (r *partnerRepository) Distribute(ctx context.Context, records []domain.ProfitDistributionRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	creditQuery := `
		UPDATE partners
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE partner_id = $1;
	`
	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(creditQuery, record.PartnerID, record.Amount, record.LastUpdatedAt, record.LastUpdatedBy)
		batch.Queue(insertDistributionQuery, distributionArgs(record)...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute distribution batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit distribution: %w", err)
	}
	return nil
}

// Withdraw lowers the partner's wallet (floored at zero to absorb rounding
// drift), raises total withdrawn, posts the safe entry and appends the
// audit row, all in one database transaction.
func (r *partnerRepository) Withdraw(ctx context.Context, partnerID string, amount decimal.Decimal, entry domain.Transaction, record domain.ProfitDistributionRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	walletQuery := `
		UPDATE partners
		SET current_balance = GREATEST(0, current_balance - $2),
		    total_withdrawn = total_withdrawn + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE partner_id = $1;
	`
	tag, err := tx.Exec(ctx, walletQuery, partnerID, amount, record.LastUpdatedAt, record.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to debit partner %s: %w", partnerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: partner %s", apperrors.ErrNotFound, partnerID)
	}

	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(entry)...); err != nil {
		return fmt.Errorf("failed to insert payout entry for partner %s: %w", partnerID, err)
	}

	if _, err := tx.Exec(ctx, insertDistributionQuery, distributionArgs(record)...); err != nil {
		return fmt.Errorf("failed to insert withdrawal record for partner %s: %w", partnerID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit withdrawal for partner %s: %w", partnerID, err)
	}
	return nil
}

// ListDistributionHistory retrieves the full audit trail, newest first.
func (r *partnerRepository) ListDistributionHistory(ctx context.Context) ([]domain.ProfitDistributionRecord, error) {
	query := `SELECT ` + distributionColumns + ` FROM profit_distribution_records ORDER BY date DESC, created_at DESC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution history: %w", err)
	}
	defer rows.Close()
	return scanDistributionRecords(rows)
}

// ListDistributionHistoryByPeriod retrieves audit rows dated in one month.
func (r *partnerRepository) ListDistributionHistoryByPeriod(ctx context.Context, month int, year int) ([]domain.ProfitDistributionRecord, error) {
	query := `
		SELECT ` + distributionColumns + `
		FROM profit_distribution_records
		WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date, created_at;
	`
	rows, err := r.pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution history for %d-%d: %w", year, month, err)
	}
	defer rows.Close()
	return scanDistributionRecords(rows)
}

func scanDistributionRecords(rows pgx.Rows) ([]domain.ProfitDistributionRecord, error) {
	records := []domain.ProfitDistributionRecord{}
	for rows.Next() {
		var rec domain.ProfitDistributionRecord
		if err := rows.Scan(
			&rec.RecordID,
			&rec.PartnerID,
			&rec.PartnerName,
			&rec.Amount,
			&rec.Type,
			&rec.Date,
			&rec.CreatedAt,
			&rec.CreatedBy,
			&rec.LastUpdatedAt,
			&rec.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan distribution record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution record rows: %w", err)
	}
	return records, nil
}
