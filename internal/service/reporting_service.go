package service

import (
	"context"

	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"
	"settlement-engine/pkg/apperror"

	"github.com/google/uuid"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	settlementRepo ports.SettlementRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(settlementRepo ports.SettlementRepository) ports.ReportingService {
	return &reportingService{settlementRepo: settlementRepo}
}

// GetSettlement returns one settlement with its withdrawal lines.
func (s *reportingService) GetSettlement(ctx context.Context, id uuid.UUID) (*domain.Settlement, []domain.SettlementLine, error) {
	settlement, lines, err := s.settlementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, apperror.InternalError(err)
	}
	if settlement == nil {
		return nil, nil, apperror.ErrNotFound("settlement")
	}
	return settlement, lines, nil
}

// ListSettlements returns a paginated settlement history.
func (s *reportingService) ListSettlements(ctx context.Context, params ports.SettlementListParams) ([]domain.Settlement, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	settlements, total, err := s.settlementRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return settlements, total, nil
}

// GetStats returns aggregated settlement statistics for one currency.
func (s *reportingService) GetStats(ctx context.Context, currency string) (*ports.SettlementStats, error) {
	if currency == "" {
		return nil, apperror.Validation("currency is required")
	}

	stats, err := s.settlementRepo.GetStats(ctx, currency)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}
