package postgres

import (
	"context"
	"fmt"

	"settlement-engine/internal/core/domain"
)

// CustodyBalanceRepo implements ports.CustodyBalanceRepository.
type CustodyBalanceRepo struct {
	pool Pool
}

// NewCustodyBalanceRepo creates a new CustodyBalanceRepo.
func NewCustodyBalanceRepo(pool Pool) *CustodyBalanceRepo {
	return &CustodyBalanceRepo{pool: pool}
}

// Upsert stores a custody balance snapshot, replacing any previous snapshot
// for the same (source_key, currency) pair.
func (r *CustodyBalanceRepo) Upsert(ctx context.Context, b *domain.CustodyBalance) error {
	query := `INSERT INTO custody_balances (id, source_key, currency, balance, label, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (source_key, currency)
		DO UPDATE SET balance = EXCLUDED.balance, label = EXCLUDED.label, updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.SourceKey, b.Currency, b.Balance, b.Label, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert custody balance: %w", err)
	}
	return nil
}

// ListByCurrency returns all custody balance snapshots for a currency,
// ordered by source key so calculation input order is stable across runs.
func (r *CustodyBalanceRepo) ListByCurrency(ctx context.Context, currency string) ([]domain.CustodyBalance, error) {
	query := `SELECT id, source_key, currency, balance, label, updated_at
		FROM custody_balances WHERE currency = $1 ORDER BY source_key`

	rows, err := r.pool.Query(ctx, query, currency)
	if err != nil {
		return nil, fmt.Errorf("list custody balances: %w", err)
	}
	defer rows.Close()

	var balances []domain.CustodyBalance
	for rows.Next() {
		var b domain.CustodyBalance
		if err := rows.Scan(&b.ID, &b.SourceKey, &b.Currency, &b.Balance, &b.Label, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan custody balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custody balances: %w", err)
	}
	return balances, nil
}
