package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"settlement-engine/config"
	"settlement-engine/internal/core/distribution"
	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"
	"settlement-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementServiceImpl implements ports.SettlementService.
type SettlementServiceImpl struct {
	balanceRepo    ports.CustodyBalanceRepository
	settlementRepo ports.SettlementRepository
	exchange       ports.ExchangeGateway
	executor       ports.WithdrawalExecutor
	lock           ports.SettlementLock
	previewCache   ports.PreviewCache
	transactor     ports.DBTransactor
	calc           *distribution.Calculator
	policy         config.SettlementConfig
	minAmount      *big.Int
	log            zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl. The policy's
// minimum amount is parsed once here so a malformed config fails at startup
// instead of on the first settlement run.
func NewSettlementService(
	balanceRepo ports.CustodyBalanceRepository,
	settlementRepo ports.SettlementRepository,
	exchange ports.ExchangeGateway,
	executor ports.WithdrawalExecutor,
	lock ports.SettlementLock,
	previewCache ports.PreviewCache,
	transactor ports.DBTransactor,
	policy config.SettlementConfig,
	log zerolog.Logger,
) (*SettlementServiceImpl, error) {
	minAmount, err := domain.ParseAmount(policy.MinAmount)
	if err != nil {
		return nil, fmt.Errorf("settlement min_amount: %w", err)
	}

	return &SettlementServiceImpl{
		balanceRepo:    balanceRepo,
		settlementRepo: settlementRepo,
		exchange:       exchange,
		executor:       executor,
		lock:           lock,
		previewCache:   previewCache,
		transactor:     transactor,
		calc:           distribution.NewCalculator(),
		policy:         policy,
		minAmount:      minAmount,
		log:            log,
	}, nil
}

// cachedPreview is the preview cache payload. The ratio travels as a
// FormatRatio string because +Inf (exchange side empty) is not a JSON
// number; the result's own float field is zeroed before marshalling.
type cachedPreview struct {
	Result       *domain.DistributionResult `json:"result"`
	CurrentRatio string                     `json:"current_ratio"`
	Actionable   bool                       `json:"actionable"`
}

// Preview computes the current withdrawal plan for a currency without
// acquiring the settlement lock or touching any state. Results are cached
// briefly so dashboards polling the preview do not hammer the exchange.
func (s *SettlementServiceImpl) Preview(ctx context.Context, currency string) (*ports.SettlementPreview, error) {
	cached, err := s.previewCache.Get(ctx, currency)
	if err != nil {
		s.log.Warn().Err(err).Str("currency", currency).Msg("preview cache read failed, computing fresh")
	}
	if cached != nil {
		var cp cachedPreview
		if err := json.Unmarshal(cached, &cp); err == nil && cp.Result != nil {
			cp.Result.CurrentRatio = domain.ParseRatio(cp.CurrentRatio)
			return &ports.SettlementPreview{Result: cp.Result, Actionable: cp.Actionable}, nil
		}
		s.log.Warn().Str("currency", currency).Msg("discarding undecodable cached preview")
	}

	sources, external, err := s.loadSnapshot(ctx, currency)
	if err != nil {
		return nil, err
	}

	result, err := s.calc.Calculate(sources, external, currency)
	if err != nil {
		return nil, err
	}

	preview := &ports.SettlementPreview{
		Result:     result,
		Actionable: s.actionable(result),
	}

	// Best-effort cache write.
	cacheResult := *result
	cacheResult.CurrentRatio = 0
	payload, err := json.Marshal(cachedPreview{
		Result:       &cacheResult,
		CurrentRatio: domain.FormatRatio(result.CurrentRatio),
		Actionable:   preview.Actionable,
	})
	if err == nil {
		if err := s.previewCache.Set(ctx, currency, payload, s.policy.PreviewTTL); err != nil {
			s.log.Warn().Err(err).Str("currency", currency).Msg("preview cache write failed")
		}
	}

	return preview, nil
}

// Execute runs one settlement for a currency end to end: compute under the
// per-currency lock, re-check the plan's own invariants, persist the record
// and its lines atomically, then dispatch each line to the withdrawal
// executor. Concurrent calls for the same currency are rejected with
// SET_002 rather than queued; the caller retries after the running
// settlement finishes and balances have been re-snapshotted.
func (s *SettlementServiceImpl) Execute(ctx context.Context, currency string) (*domain.Settlement, []domain.SettlementLine, error) {
	acquired, err := s.lock.Acquire(ctx, currency, s.policy.LockTTL)
	if err != nil {
		return nil, nil, apperror.ErrLockTimeout(fmt.Errorf("acquire settlement lock: %w", err))
	}
	if !acquired {
		return nil, nil, apperror.ErrSettlementInProgress(currency)
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), currency); err != nil {
			s.log.Warn().Err(err).Str("currency", currency).Msg("failed to release settlement lock")
		}
	}()

	sources, external, err := s.loadSnapshot(ctx, currency)
	if err != nil {
		return nil, nil, err
	}

	var result *domain.DistributionResult
	switch s.policy.Policy {
	case config.PolicyRatio:
		result, err = s.calc.CalculateWithRatioThreshold(sources, external, currency, s.policy.MaxRatioDeviation)
	default:
		result, err = s.calc.CalculateWithThreshold(sources, external, currency, s.minAmount)
	}
	if err != nil {
		return nil, nil, err
	}
	if result == nil {
		return nil, nil, apperror.ErrNothingToSettle(currency)
	}

	// Guard before any money moves. A failure here is a calculator defect
	// and must surface loudly, never be retried.
	if err := s.calc.Validate(result); err != nil {
		s.log.Error().Err(err).Str("currency", currency).Msg("distribution failed self-validation")
		return nil, nil, err
	}

	settlement, lines := s.buildSettlementRecord(result)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.settlementRepo.Create(ctx, dbTx, settlement, lines); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("create settlement: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if err := s.dispatch(ctx, settlement, lines); err != nil {
		reason := err.Error()
		if markErr := s.settlementRepo.MarkFailed(ctx, settlement.ID, reason); markErr != nil {
			s.log.Error().Err(markErr).Str("settlement_id", settlement.ID.String()).Msg("failed to mark settlement failed")
		}
		settlement.Status = domain.SettlementStatusFailed
		settlement.FailureReason = &reason
		return nil, nil, apperror.InternalError(fmt.Errorf("dispatch withdrawals: %w", err))
	}

	now := time.Now().UTC()
	if err := s.settlementRepo.MarkCompleted(ctx, settlement.ID, now); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("mark settlement completed: %w", err))
	}
	settlement.Status = domain.SettlementStatusCompleted
	settlement.ExecutedAt = &now

	s.log.Info().
		Str("settlement_id", settlement.ID.String()).
		Str("currency", currency).
		Str("settlement_amount", settlement.SettlementAmount).
		Int("lines", len(lines)).
		Msg("settlement executed")

	return settlement, lines, nil
}

// loadSnapshot gathers the custody-side sources and the exchange-side
// balance for one currency.
func (s *SettlementServiceImpl) loadSnapshot(ctx context.Context, currency string) ([]domain.BalanceSource, *big.Int, error) {
	balances, err := s.balanceRepo.ListByCurrency(ctx, currency)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("list custody balances: %w", err))
	}
	if len(balances) == 0 {
		return nil, nil, apperror.ErrNoCustodyBalances(currency)
	}

	sources := make([]domain.BalanceSource, 0, len(balances))
	for _, b := range balances {
		src, err := b.Source()
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}

	external, err := s.exchange.GetBalance(ctx, currency)
	if err != nil {
		return nil, nil, apperror.ErrExchangeUnavailable(fmt.Errorf("exchange balance for %s: %w", currency, err))
	}

	return sources, external, nil
}

// actionable applies the configured suppression policy to a computed plan.
func (s *SettlementServiceImpl) actionable(result *domain.DistributionResult) bool {
	if !result.NeedsSettlement {
		return false
	}
	switch s.policy.Policy {
	case config.PolicyRatio:
		deviation := result.CurrentRatio - domain.TargetRatio
		if deviation < 0 {
			deviation = -deviation
		}
		return deviation > s.policy.MaxRatioDeviation
	default:
		return result.SettlementAmount.Cmp(s.minAmount) >= 0
	}
}

// dispatch sends every line to the withdrawal executor, recording the
// execution reference per line as it goes.
func (s *SettlementServiceImpl) dispatch(ctx context.Context, settlement *domain.Settlement, lines []domain.SettlementLine) error {
	for i := range lines {
		ref, err := s.executor.Execute(ctx, ports.WithdrawalRequest{
			SettlementID: settlement.ID,
			Currency:     settlement.Currency,
			SourceKey:    lines[i].SourceKey,
			Amount:       lines[i].Amount,
		})
		if err != nil {
			return fmt.Errorf("withdrawal from %s: %w", lines[i].SourceKey, err)
		}

		lines[i].WithdrawalRef = &ref
		if err := s.settlementRepo.SetLineWithdrawalRef(ctx, lines[i].ID, ref); err != nil {
			s.log.Warn().Err(err).
				Str("line_id", lines[i].ID.String()).
				Str("withdrawal_ref", ref).
				Msg("failed to record withdrawal reference")
		}
	}
	return nil
}

// buildSettlementRecord converts a validated calculation into the persisted
// settlement record and its lines. Lines are ordered largest first so the
// biggest transfer dispatches before any smaller one can fail the run.
func (s *SettlementServiceImpl) buildSettlementRecord(result *domain.DistributionResult) (*domain.Settlement, []domain.SettlementLine) {
	now := time.Now().UTC()
	settlement := &domain.Settlement{
		ID:               uuid.New(),
		Currency:         result.Currency,
		PlatformBalance:  result.PlatformBalance.String(),
		ExchangeBalance:  result.ExternalBalance.String(),
		TargetBalance:    result.TargetBalance.String(),
		SettlementAmount: result.SettlementAmount.String(),
		CurrentRatio:     domain.FormatRatio(result.CurrentRatio),
		Status:           domain.SettlementStatusPlanned,
		CreatedAt:        now,
	}

	ordered := s.calc.PriorityOrder(result)
	lines := make([]domain.SettlementLine, 0, len(ordered))
	for _, d := range ordered {
		lines = append(lines, domain.SettlementLine{
			ID:               uuid.New(),
			SettlementID:     settlement.ID,
			SourceKey:        d.SourceKey,
			Amount:           d.Amount.String(),
			Percentage:       d.Percentage,
			OriginalBalance:  d.OriginalBalance.String(),
			RemainingBalance: d.RemainingBalance.String(),
		})
	}

	return settlement, lines
}
