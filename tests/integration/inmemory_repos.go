package integration

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Custody Balance Repo ---

type inMemoryBalanceRepo struct {
	mu       sync.RWMutex
	balances map[string]*domain.CustodyBalance // keyed by source_key|currency
}

func newInMemoryBalanceRepo() *inMemoryBalanceRepo {
	return &inMemoryBalanceRepo{balances: make(map[string]*domain.CustodyBalance)}
}

func balanceKey(sourceKey, currency string) string {
	return sourceKey + "|" + currency
}

func (r *inMemoryBalanceRepo) Upsert(ctx context.Context, b *domain.CustodyBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.balances[balanceKey(b.SourceKey, b.Currency)] = &cp
	return nil
}

func (r *inMemoryBalanceRepo) ListByCurrency(ctx context.Context, currency string) ([]domain.CustodyBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.CustodyBalance
	for _, b := range r.balances {
		if b.Currency == currency {
			result = append(result, *b)
		}
	}
	// Same order the SQL repo produces.
	sort.Slice(result, func(i, j int) bool { return result[i].SourceKey < result[j].SourceKey })
	return result, nil
}

// --- In-Memory Settlement Repo ---

type settlementRecord struct {
	settlement *domain.Settlement
	lines      []domain.SettlementLine
}

type inMemorySettlementRepo struct {
	mu          sync.RWMutex
	settlements map[uuid.UUID]*settlementRecord
}

func newInMemorySettlementRepo() *inMemorySettlementRepo {
	return &inMemorySettlementRepo{settlements: make(map[uuid.UUID]*settlementRecord)}
}

func (r *inMemorySettlementRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.Settlement, lines []domain.SettlementLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	linesCp := make([]domain.SettlementLine, len(lines))
	copy(linesCp, lines)
	r.settlements[s.ID] = &settlementRecord{settlement: &cp, lines: linesCp}
	return nil
}

func (r *inMemorySettlementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Settlement, []domain.SettlementLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.settlements[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *rec.settlement
	lines := make([]domain.SettlementLine, len(rec.lines))
	copy(lines, rec.lines)
	return &cp, lines, nil
}

func (r *inMemorySettlementRepo) List(ctx context.Context, params ports.SettlementListParams) ([]domain.Settlement, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Settlement
	for _, rec := range r.settlements {
		s := rec.settlement
		if params.Currency != nil && s.Currency != *params.Currency {
			continue
		}
		if params.Status != nil && s.Status != *params.Status {
			continue
		}
		if params.From != nil && s.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && s.CreatedAt.Unix() > *params.To {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	total := int64(len(result))

	// Simple pagination
	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.Settlement{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemorySettlementRepo) MarkCompleted(ctx context.Context, id uuid.UUID, executedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.settlements[id]
	if !ok {
		return fmt.Errorf("settlement not found")
	}
	rec.settlement.Status = domain.SettlementStatusCompleted
	rec.settlement.ExecutedAt = &executedAt
	return nil
}

func (r *inMemorySettlementRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.settlements[id]
	if !ok {
		return fmt.Errorf("settlement not found")
	}
	rec.settlement.Status = domain.SettlementStatusFailed
	rec.settlement.FailureReason = &reason
	return nil
}

func (r *inMemorySettlementRepo) SetLineWithdrawalRef(ctx context.Context, lineID uuid.UUID, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.settlements {
		for i := range rec.lines {
			if rec.lines[i].ID == lineID {
				rec.lines[i].WithdrawalRef = &ref
				return nil
			}
		}
	}
	return fmt.Errorf("settlement line not found")
}

func (r *inMemorySettlementRepo) GetStats(ctx context.Context, currency string) (*ports.SettlementStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.SettlementStats{}
	totalSettled := new(big.Int)
	for _, rec := range r.settlements {
		s := rec.settlement
		if s.Currency != currency {
			continue
		}
		stats.TotalSettlements++
		switch s.Status {
		case domain.SettlementStatusCompleted:
			stats.Completed++
			if amt, ok := new(big.Int).SetString(s.SettlementAmount, 10); ok {
				totalSettled.Add(totalSettled, amt)
			}
		case domain.SettlementStatusFailed:
			stats.Failed++
		case domain.SettlementStatusPlanned:
			stats.Planned++
		}
	}
	stats.TotalSettled = totalSettled.String()
	return stats, nil
}

// --- Stub Exchange Gateway ---

// stubExchange serves a fixed exchange-side balance, or an error when set.
type stubExchange struct {
	mu      sync.Mutex
	balance *big.Int
	err     error
}

func newStubExchange(balance string) *stubExchange {
	b, _ := new(big.Int).SetString(balance, 10)
	return &stubExchange{balance: b}
}

func (e *stubExchange) setBalance(balance string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.balance, _ = new(big.Int).SetString(balance, 10)
}

func (e *stubExchange) setError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

func (e *stubExchange) GetBalance(ctx context.Context, currency string) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return new(big.Int).Set(e.balance), nil
}

// --- Stub Withdrawal Executor ---

// stubExecutor records every withdrawal request and hands out sequential
// references. An optional gate makes the first execution block so tests can
// hold a settlement mid-flight.
type stubExecutor struct {
	mu       sync.Mutex
	requests []ports.WithdrawalRequest
	err      error

	started  chan struct{}
	release  chan struct{}
	gateOnce sync.Once
}

func newStubExecutor() *stubExecutor {
	return &stubExecutor{}
}

// newGatedExecutor blocks the first Execute call until release is closed,
// signalling started once it is in flight.
func newGatedExecutor() *stubExecutor {
	return &stubExecutor{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (e *stubExecutor) setError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

func (e *stubExecutor) calls() []ports.WithdrawalRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ports.WithdrawalRequest, len(e.requests))
	copy(out, e.requests)
	return out
}

func (e *stubExecutor) Execute(ctx context.Context, req ports.WithdrawalRequest) (string, error) {
	if e.started != nil {
		e.gateOnce.Do(func() {
			close(e.started)
			<-e.release
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return "", e.err
	}
	e.requests = append(e.requests, req)
	return fmt.Sprintf("wd-ref-%d", len(e.requests)), nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
