package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SettlementRepo implements ports.SettlementRepository.
type SettlementRepo struct {
	pool Pool
}

// NewSettlementRepo creates a new SettlementRepo.
func NewSettlementRepo(pool Pool) *SettlementRepo {
	return &SettlementRepo{pool: pool}
}

// Create inserts a settlement and all of its lines within the caller's
// transaction. The record and its lines land atomically or not at all.
func (r *SettlementRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.Settlement, lines []domain.SettlementLine) error {
	query := `INSERT INTO settlements (id, currency, platform_balance, exchange_balance, target_balance,
		settlement_amount, current_ratio, status, failure_reason, created_at, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		s.ID, s.Currency, s.PlatformBalance, s.ExchangeBalance, s.TargetBalance,
		s.SettlementAmount, s.CurrentRatio, s.Status, s.FailureReason, s.CreatedAt, s.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}

	lineQuery := `INSERT INTO settlement_lines (id, settlement_id, source_key, amount, percentage,
		original_balance, remaining_balance, withdrawal_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, l := range lines {
		_, err := tx.Exec(ctx, lineQuery,
			l.ID, l.SettlementID, l.SourceKey, l.Amount, l.Percentage,
			l.OriginalBalance, l.RemainingBalance, l.WithdrawalRef,
		)
		if err != nil {
			return fmt.Errorf("insert settlement line: %w", err)
		}
	}
	return nil
}

// GetByID fetches a settlement and its lines.
func (r *SettlementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Settlement, []domain.SettlementLine, error) {
	query := `SELECT id, currency, platform_balance, exchange_balance, target_balance,
		settlement_amount, current_ratio, status, failure_reason, created_at, executed_at
		FROM settlements WHERE id = $1`

	s := &domain.Settlement{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Currency, &s.PlatformBalance, &s.ExchangeBalance, &s.TargetBalance,
		&s.SettlementAmount, &s.CurrentRatio, &s.Status, &s.FailureReason, &s.CreatedAt, &s.ExecutedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get settlement by id: %w", err)
	}

	lines, err := r.linesBySettlement(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s, lines, nil
}

// List fetches settlements with filtering and pagination.
func (r *SettlementRepo) List(ctx context.Context, params ports.SettlementListParams) ([]domain.Settlement, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Currency != nil {
		conditions = append(conditions, fmt.Sprintf("currency = $%d", argIdx))
		args = append(args, *params.Currency)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM settlements %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count settlements: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT id, currency, platform_balance, exchange_balance, target_balance,
		settlement_amount, current_ratio, status, failure_reason, created_at, executed_at
		FROM settlements %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []domain.Settlement
	for rows.Next() {
		var s domain.Settlement
		err := rows.Scan(
			&s.ID, &s.Currency, &s.PlatformBalance, &s.ExchangeBalance, &s.TargetBalance,
			&s.SettlementAmount, &s.CurrentRatio, &s.Status, &s.FailureReason, &s.CreatedAt, &s.ExecutedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan settlement row: %w", err)
		}
		settlements = append(settlements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate settlement rows: %w", err)
	}
	return settlements, total, nil
}

// MarkCompleted transitions a settlement to COMPLETED.
func (r *SettlementRepo) MarkCompleted(ctx context.Context, id uuid.UUID, executedAt time.Time) error {
	query := `UPDATE settlements SET status = $1, executed_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, domain.SettlementStatusCompleted, executedAt, id)
	if err != nil {
		return fmt.Errorf("mark settlement completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("settlement not found: %s", id)
	}
	return nil
}

// MarkFailed transitions a settlement to FAILED with a reason.
func (r *SettlementRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE settlements SET status = $1, failure_reason = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, domain.SettlementStatusFailed, reason, id)
	if err != nil {
		return fmt.Errorf("mark settlement failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("settlement not found: %s", id)
	}
	return nil
}

// SetLineWithdrawalRef records the execution-side reference on one line.
func (r *SettlementRepo) SetLineWithdrawalRef(ctx context.Context, lineID uuid.UUID, ref string) error {
	query := `UPDATE settlement_lines SET withdrawal_ref = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, ref, lineID)
	if err != nil {
		return fmt.Errorf("set withdrawal ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("settlement line not found: %s", lineID)
	}
	return nil
}

// GetStats retrieves aggregated settlement statistics for a currency.
func (r *SettlementRepo) GetStats(ctx context.Context, currency string) (*ports.SettlementStats, error) {
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
		COUNT(*) FILTER (WHERE status = 'FAILED') AS failed,
		COUNT(*) FILTER (WHERE status = 'PLANNED') AS planned,
		COALESCE(SUM(settlement_amount::numeric) FILTER (WHERE status = 'COMPLETED'), 0)::text AS total_settled
		FROM settlements WHERE currency = $1`

	stats := &ports.SettlementStats{}
	err := r.pool.QueryRow(ctx, query, currency).Scan(
		&stats.TotalSettlements, &stats.Completed, &stats.Failed, &stats.Planned, &stats.TotalSettled,
	)
	if err != nil {
		return nil, fmt.Errorf("get settlement stats: %w", err)
	}
	return stats, nil
}

func (r *SettlementRepo) linesBySettlement(ctx context.Context, settlementID uuid.UUID) ([]domain.SettlementLine, error) {
	query := `SELECT id, settlement_id, source_key, amount, percentage,
		original_balance, remaining_balance, withdrawal_ref
		FROM settlement_lines WHERE settlement_id = $1 ORDER BY amount::numeric DESC, source_key`

	rows, err := r.pool.Query(ctx, query, settlementID)
	if err != nil {
		return nil, fmt.Errorf("list settlement lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.SettlementLine
	for rows.Next() {
		var l domain.SettlementLine
		err := rows.Scan(
			&l.ID, &l.SettlementID, &l.SourceKey, &l.Amount, &l.Percentage,
			&l.OriginalBalance, &l.RemainingBalance, &l.WithdrawalRef,
		)
		if err != nil {
			return nil, fmt.Errorf("scan settlement line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlement lines: %w", err)
	}
	return lines, nil
}
