package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"settlement-engine/config"
	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"
	"settlement-engine/internal/core/ports/mocks"
	"settlement-engine/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type settlementTestDeps struct {
	svc          *SettlementServiceImpl
	balanceRepo  *mocks.MockCustodyBalanceRepository
	settRepo     *mocks.MockSettlementRepository
	exchange     *mocks.MockExchangeGateway
	executor     *mocks.MockWithdrawalExecutor
	lock         *mocks.MockSettlementLock
	previewCache *mocks.MockPreviewCache
	transactor   *mocks.MockDBTransactor
	policy       config.SettlementConfig
	ctrl         *gomock.Controller
}

func setupSettlementService(t *testing.T, policy config.SettlementConfig) *settlementTestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &settlementTestDeps{
		balanceRepo:  mocks.NewMockCustodyBalanceRepository(ctrl),
		settRepo:     mocks.NewMockSettlementRepository(ctrl),
		exchange:     mocks.NewMockExchangeGateway(ctrl),
		executor:     mocks.NewMockWithdrawalExecutor(ctrl),
		lock:         mocks.NewMockSettlementLock(ctrl),
		previewCache: mocks.NewMockPreviewCache(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		policy:       policy,
		ctrl:         ctrl,
	}

	svc, err := NewSettlementService(
		d.balanceRepo, d.settRepo, d.exchange, d.executor,
		d.lock, d.previewCache, d.transactor, policy, zerolog.Nop(),
	)
	require.NoError(t, err)
	d.svc = svc
	return d
}

func amountPolicy(minAmount string) config.SettlementConfig {
	return config.SettlementConfig{
		Policy:     config.PolicyAmount,
		MinAmount:  minAmount,
		LockTTL:    2 * time.Minute,
		PreviewTTL: 15 * time.Second,
	}
}

func ratioPolicy(maxDeviation float64) config.SettlementConfig {
	return config.SettlementConfig{
		Policy:            config.PolicyRatio,
		MinAmount:         "0",
		MaxRatioDeviation: maxDeviation,
		LockTTL:           2 * time.Minute,
		PreviewTTL:        15 * time.Second,
	}
}

func custodySnapshot() []domain.CustodyBalance {
	return []domain.CustodyBalance{
		{SourceKey: "cold-1", Currency: "BTC", Balance: "100", Label: "Cold storage 1"},
		{SourceKey: "cold-2", Currency: "BTC", Balance: "300", Label: "Cold storage 2"},
	}
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// ==================== Preview Tests ====================

func TestSettlementService_Preview_ComputesOnCacheMiss(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	// Cache miss
	d.previewCache.EXPECT().Get(ctx, "BTC").Return(nil, nil)
	// Load snapshot
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(200), nil)
	// Best-effort cache write
	d.previewCache.EXPECT().Set(ctx, "BTC", gomock.Any(), 15*time.Second).Return(nil)

	preview, err := d.svc.Preview(ctx, "BTC")
	require.NoError(t, err)
	require.NotNil(t, preview.Result)

	// platform 400, exchange 200, target floor(600/2)=300, settlement 100
	assert.Equal(t, "400", preview.Result.PlatformBalance.String())
	assert.Equal(t, "300", preview.Result.TargetBalance.String())
	assert.Equal(t, "100", preview.Result.SettlementAmount.String())
	assert.True(t, preview.Result.NeedsSettlement)
	assert.True(t, preview.Actionable)

	require.Len(t, preview.Result.Distributions, 2)
	assert.Equal(t, "25", preview.Result.Distributions[0].Amount.String())
	assert.Equal(t, "75", preview.Result.Distributions[1].Amount.String())
}

func TestSettlementService_Preview_CacheHit(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	payload, err := json.Marshal(cachedPreview{
		Result:       &domain.DistributionResult{Currency: "ETH", NeedsSettlement: false},
		CurrentRatio: "1.0000",
		Actionable:   false,
	})
	require.NoError(t, err)

	// Hit short-circuits: no repo or exchange calls expected.
	d.previewCache.EXPECT().Get(ctx, "ETH").Return(payload, nil)

	preview, err := d.svc.Preview(ctx, "ETH")
	require.NoError(t, err)
	assert.Equal(t, "ETH", preview.Result.Currency)
	assert.InDelta(t, 1.0, preview.Result.CurrentRatio, 1e-9)
	assert.False(t, preview.Actionable)
}

func TestSettlementService_Preview_CachesInfiniteRatio(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	// Exchange side empty: ratio is +Inf, which has no JSON number form.
	// The cache payload must still round-trip it.
	var stored []byte
	d.previewCache.EXPECT().Get(ctx, "BTC").Return(nil, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(0), nil)
	d.previewCache.EXPECT().Set(ctx, "BTC", gomock.Any(), 15*time.Second).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			stored = value
			return nil
		})

	first, err := d.svc.Preview(ctx, "BTC")
	require.NoError(t, err)
	assert.True(t, math.IsInf(first.Result.CurrentRatio, 1))
	require.NotNil(t, stored, "preview with infinite ratio must be cached")

	// Second call served entirely from the cached payload.
	d.previewCache.EXPECT().Get(ctx, "BTC").Return(stored, nil)

	second, err := d.svc.Preview(ctx, "BTC")
	require.NoError(t, err)
	assert.True(t, math.IsInf(second.Result.CurrentRatio, 1))
	assert.Equal(t, first.Result.SettlementAmount.String(), second.Result.SettlementAmount.String())
	assert.Equal(t, first.Actionable, second.Actionable)
}

func TestSettlementService_Preview_CacheErrorFallsThrough(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.previewCache.EXPECT().Get(ctx, "BTC").Return(nil, errors.New("redis down"))
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(400), nil)
	d.previewCache.EXPECT().Set(ctx, "BTC", gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	preview, err := d.svc.Preview(ctx, "BTC")
	require.NoError(t, err)
	// balanced already: 400 vs 400
	assert.False(t, preview.Result.NeedsSettlement)
	assert.False(t, preview.Actionable)
}

func TestSettlementService_Preview_NotActionableBelowMinimum(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("1000"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.previewCache.EXPECT().Get(ctx, "BTC").Return(nil, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(200), nil)
	d.previewCache.EXPECT().Set(ctx, "BTC", gomock.Any(), gomock.Any()).Return(nil)

	preview, err := d.svc.Preview(ctx, "BTC")
	require.NoError(t, err)
	// Settlement of 100 is real but under the 1000 floor.
	assert.True(t, preview.Result.NeedsSettlement)
	assert.False(t, preview.Actionable)
}

// ==================== Execute Tests ====================

func TestSettlementService_Execute_Success(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.lock.EXPECT().Acquire(ctx, "BTC", 2*time.Minute).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(200), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.settRepo.EXPECT().Create(ctx, tx, gomock.Any(), gomock.Any()).Return(nil)
	// One withdrawal per line, largest first.
	d.executor.EXPECT().Execute(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.WithdrawalRequest) (string, error) {
			return "wd-" + req.SourceKey, nil
		}).Times(2)
	d.settRepo.EXPECT().SetLineWithdrawalRef(ctx, gomock.Any(), "wd-cold-2").Return(nil)
	d.settRepo.EXPECT().SetLineWithdrawalRef(ctx, gomock.Any(), "wd-cold-1").Return(nil)
	d.settRepo.EXPECT().MarkCompleted(ctx, gomock.Any(), gomock.Any()).Return(nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	settlement, lines, err := d.svc.Execute(ctx, "BTC")
	require.NoError(t, err)
	require.NotNil(t, settlement)

	assert.Equal(t, domain.SettlementStatusCompleted, settlement.Status)
	assert.NotNil(t, settlement.ExecutedAt)
	assert.Equal(t, "400", settlement.PlatformBalance)
	assert.Equal(t, "200", settlement.ExchangeBalance)
	assert.Equal(t, "300", settlement.TargetBalance)
	assert.Equal(t, "100", settlement.SettlementAmount)
	assert.Equal(t, "2.0000", settlement.CurrentRatio)

	// Lines come back largest first.
	require.Len(t, lines, 2)
	assert.Equal(t, "cold-2", lines[0].SourceKey)
	assert.Equal(t, "75", lines[0].Amount)
	assert.Equal(t, "225", lines[0].RemainingBalance)
	require.NotNil(t, lines[0].WithdrawalRef)
	assert.Equal(t, "wd-cold-2", *lines[0].WithdrawalRef)
	assert.Equal(t, "cold-1", lines[1].SourceKey)
	assert.Equal(t, "25", lines[1].Amount)
	require.NotNil(t, lines[1].WithdrawalRef)
	assert.Equal(t, "wd-cold-1", *lines[1].WithdrawalRef)
}

func TestSettlementService_Execute_LockHeld(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(false, nil)

	settlement, lines, err := d.svc.Execute(ctx, "BTC")
	assert.Nil(t, settlement)
	assert.Nil(t, lines)
	assertAppError(t, err, "SET_002")
}

func TestSettlementService_Execute_LockBackendDown(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(false, errors.New("redis down"))

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "SYS_002")
}

func TestSettlementService_Execute_NothingToSettle(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	// Exchange already holds half of the combined total.
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(400), nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "SET_003")
}

func TestSettlementService_Execute_BelowMinimumAmount(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("1000"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(200), nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "SET_003")
}

func TestSettlementService_Execute_RatioWithinDeviation(t *testing.T) {
	d := setupSettlementService(t, ratioPolicy(0.1))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return([]domain.CustodyBalance{
		{SourceKey: "cold-1", Currency: "BTC", Balance: "105"},
	}, nil)
	// ratio 1.05, within the 0.1 band
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(100), nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "SET_003")
}

func TestSettlementService_Execute_RatioBeyondDeviation(t *testing.T) {
	d := setupSettlementService(t, ratioPolicy(0.1))
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return([]domain.CustodyBalance{
		{SourceKey: "cold-1", Currency: "BTC", Balance: "300"},
	}, nil)
	// ratio 3.0, far outside the 0.1 band
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(100), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.settRepo.EXPECT().Create(ctx, tx, gomock.Any(), gomock.Any()).Return(nil)
	d.executor.EXPECT().Execute(ctx, gomock.Any()).Return("wd-1", nil)
	d.settRepo.EXPECT().SetLineWithdrawalRef(ctx, gomock.Any(), "wd-1").Return(nil)
	d.settRepo.EXPECT().MarkCompleted(ctx, gomock.Any(), gomock.Any()).Return(nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	settlement, lines, err := d.svc.Execute(ctx, "BTC")
	require.NoError(t, err)
	// target floor(400/2)=200, settlement 100, single source takes it all
	assert.Equal(t, "100", settlement.SettlementAmount)
	require.Len(t, lines, 1)
	assert.Equal(t, "100", lines[0].Amount)
}

func TestSettlementService_Execute_NoCustodyBalances(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(nil, nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "SET_004")
}

func TestSettlementService_Execute_ExchangeUnavailable(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(nil, errors.New("connection refused"))
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "SYS_003")
}

func TestSettlementService_Execute_CorruptStoredBalance(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return([]domain.CustodyBalance{
		{SourceKey: "cold-1", Currency: "BTC", Balance: "not-a-number"},
	}, nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "AMT_001")
}

func TestSettlementService_Execute_DispatchFailureMarksFailed(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(200), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.settRepo.EXPECT().Create(ctx, tx, gomock.Any(), gomock.Any()).Return(nil)
	// First withdrawal blows up; the run must be marked failed.
	d.executor.EXPECT().Execute(ctx, gomock.Any()).Return("", errors.New("custody API timeout"))
	d.settRepo.EXPECT().MarkFailed(ctx, gomock.Any(), gomock.Any()).Return(nil)
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	settlement, lines, err := d.svc.Execute(ctx, "BTC")
	assert.Nil(t, settlement)
	assert.Nil(t, lines)
	assertAppError(t, err, "SYS_001")
}

func TestSettlementService_Execute_BeginTxFailure(t *testing.T) {
	d := setupSettlementService(t, amountPolicy("0"))
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.lock.EXPECT().Acquire(ctx, "BTC", gomock.Any()).Return(true, nil)
	d.balanceRepo.EXPECT().ListByCurrency(ctx, "BTC").Return(custodySnapshot(), nil)
	d.exchange.EXPECT().GetBalance(ctx, "BTC").Return(big.NewInt(200), nil)
	d.transactor.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))
	d.lock.EXPECT().Release(gomock.Any(), "BTC").Return(nil)

	_, _, err := d.svc.Execute(ctx, "BTC")
	assertAppError(t, err, "SYS_001")
}

func TestNewSettlementService_RejectsBadMinAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := NewSettlementService(
		mocks.NewMockCustodyBalanceRepository(ctrl),
		mocks.NewMockSettlementRepository(ctrl),
		mocks.NewMockExchangeGateway(ctrl),
		mocks.NewMockWithdrawalExecutor(ctrl),
		mocks.NewMockSettlementLock(ctrl),
		mocks.NewMockPreviewCache(ctrl),
		mocks.NewMockDBTransactor(ctrl),
		amountPolicy("1.5"),
		zerolog.Nop(),
	)
	require.Error(t, err)
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
