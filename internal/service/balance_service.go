package service

import (
	"context"
	"fmt"
	"time"

	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"
	"settlement-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// balanceService implements ports.BalanceService.
type balanceService struct {
	balanceRepo ports.CustodyBalanceRepository
	log         zerolog.Logger
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo ports.CustodyBalanceRepository, log zerolog.Logger) ports.BalanceService {
	return &balanceService{
		balanceRepo: balanceRepo,
		log:         log,
	}
}

// Record validates and stores one custody balance snapshot, replacing any
// previous snapshot for the same (source_key, currency).
func (s *balanceService) Record(ctx context.Context, req ports.RecordBalanceRequest) (*domain.CustodyBalance, error) {
	// Reject malformed amounts before they reach storage; everything
	// downstream assumes snapshots parse cleanly.
	if _, err := domain.ParseAmount(req.Balance); err != nil {
		return nil, err
	}

	balance := &domain.CustodyBalance{
		ID:        uuid.New(),
		SourceKey: req.SourceKey,
		Currency:  req.Currency,
		Balance:   req.Balance,
		Label:     req.Label,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.balanceRepo.Upsert(ctx, balance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("upsert custody balance: %w", err))
	}

	s.log.Info().
		Str("source_key", balance.SourceKey).
		Str("currency", balance.Currency).
		Str("balance", balance.Balance).
		Msg("custody balance recorded")

	return balance, nil
}

// List returns all custody balance snapshots for a currency.
func (s *balanceService) List(ctx context.Context, currency string) ([]domain.CustodyBalance, error) {
	balances, err := s.balanceRepo.ListByCurrency(ctx, currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list custody balances: %w", err))
	}
	return balances, nil
}
