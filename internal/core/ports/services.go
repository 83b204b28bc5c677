package ports

import (
	"context"
	"math/big"
	"time"

	"settlement-engine/internal/core/domain"

	"github.com/google/uuid"
)

// ExchangeGateway queries the exchange-side balance for a currency. The
// balance comes back as an exact integer in the smallest unit; the gateway
// must never round through a float.
type ExchangeGateway interface {
	GetBalance(ctx context.Context, currency string) (*big.Int, error)
}

// WithdrawalExecutor dispatches one withdrawal line to the execution layer
// that issues the actual on-chain transfer from a custody source towards
// the exchange. Returns the execution-side reference for the transfer.
type WithdrawalExecutor interface {
	Execute(ctx context.Context, req WithdrawalRequest) (string, error)
}

// WithdrawalRequest is one transfer order derived from a settlement line.
type WithdrawalRequest struct {
	SettlementID uuid.UUID
	Currency     string
	SourceKey    string
	Amount       string // base-10 integer, smallest unit
}

// SettlementLock serializes settlement execution per currency so two
// concurrent runs cannot double-spend against a stale balance snapshot.
type SettlementLock interface {
	// Acquire returns true if the lock was taken. A held lock expires
	// after ttl in case the holder dies.
	Acquire(ctx context.Context, currency string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, currency string) error
}

// PreviewCache is a short-TTL cache of computed preview payloads.
type PreviewCache interface {
	Get(ctx context.Context, currency string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, currency string, value []byte, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// SettlementPreview is a computed plan plus the policy verdict on it.
type SettlementPreview struct {
	Result *domain.DistributionResult
	// Actionable is true when the plan passed the configured suppression
	// policy and Execute would act on it.
	Actionable bool
}

// SettlementService runs the settlement workflow for a currency.
type SettlementService interface {
	Preview(ctx context.Context, currency string) (*SettlementPreview, error)
	Execute(ctx context.Context, currency string) (*domain.Settlement, []domain.SettlementLine, error)
}

// BalanceService manages custody balance snapshots (the write side of the
// balance-query boundary).
type BalanceService interface {
	Record(ctx context.Context, req RecordBalanceRequest) (*domain.CustodyBalance, error)
	List(ctx context.Context, currency string) ([]domain.CustodyBalance, error)
}

// RecordBalanceRequest holds validated input for recording a custody balance.
type RecordBalanceRequest struct {
	SourceKey string
	Currency  string
	Balance   string
	Label     string
}

// ReportingService serves settlement history and aggregates.
type ReportingService interface {
	GetSettlement(ctx context.Context, id uuid.UUID) (*domain.Settlement, []domain.SettlementLine, error)
	ListSettlements(ctx context.Context, params SettlementListParams) ([]domain.Settlement, int64, error)
	GetStats(ctx context.Context, currency string) (*SettlementStats, error)
}
