package ports

import (
	"context"
	"time"

	"settlement-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustodyBalanceRepository defines persistence for custody balance snapshots.
type CustodyBalanceRepository interface {
	// Upsert inserts or replaces the snapshot for (source_key, currency).
	Upsert(ctx context.Context, balance *domain.CustodyBalance) error
	ListByCurrency(ctx context.Context, currency string) ([]domain.CustodyBalance, error)
}

// SettlementRepository defines persistence for settlement records and their
// withdrawal lines. Create runs inside a transaction so a settlement and its
// lines land atomically; status transitions happen after dispatch and use
// plain pool writes.
type SettlementRepository interface {
	Create(ctx context.Context, tx pgx.Tx, settlement *domain.Settlement, lines []domain.SettlementLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Settlement, []domain.SettlementLine, error)
	List(ctx context.Context, params SettlementListParams) ([]domain.Settlement, int64, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, executedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	SetLineWithdrawalRef(ctx context.Context, lineID uuid.UUID, ref string) error
	GetStats(ctx context.Context, currency string) (*SettlementStats, error)
}

// SettlementListParams holds filter + pagination for listing settlements.
type SettlementListParams struct {
	Currency *string
	Status   *domain.SettlementStatus
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// SettlementStats holds aggregated statistics for one currency.
type SettlementStats struct {
	TotalSettlements int64
	Completed        int64
	Failed           int64
	Planned          int64
	TotalSettled     string // sum of completed settlement amounts, decimal string
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
