package handler

import (
	"math"
	"strconv"

	"settlement-engine/internal/adapter/http/dto"
	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"
	"settlement-engine/pkg/apperror"
	"settlement-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SettlementHandler handles settlement workflow and reporting endpoints.
type SettlementHandler struct {
	settlementSvc ports.SettlementService
	reportingSvc  ports.ReportingService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementSvc ports.SettlementService, reportingSvc ports.ReportingService) *SettlementHandler {
	return &SettlementHandler{
		settlementSvc: settlementSvc,
		reportingSvc:  reportingSvc,
	}
}

// Preview handles GET /api/v1/settlements/preview.
func (h *SettlementHandler) Preview(c *gin.Context) {
	currency := c.Query("currency")
	if currency == "" {
		response.Error(c, apperror.Validation("currency query parameter is required"))
		return
	}

	preview, err := h.settlementSvc.Preview(c.Request.Context(), currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toPreviewResponse(preview))
}

// Execute handles POST /api/v1/settlements.
func (h *SettlementHandler) Execute(c *gin.Context) {
	var req dto.ExecuteSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	settlement, lines, err := h.settlementSvc.Execute(c.Request.Context(), req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toSettlementResponse(settlement, lines))
}

// GetByID handles GET /api/v1/settlements/:id.
func (h *SettlementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid settlement id"))
		return
	}

	settlement, lines, err := h.reportingSvc.GetSettlement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSettlementResponse(settlement, lines))
}

// List handles GET /api/v1/settlements.
func (h *SettlementHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.SettlementListParams{
		Page:     page,
		PageSize: pageSize,
	}

	if cur := c.Query("currency"); cur != "" {
		params.Currency = &cur
	}
	if s := c.Query("status"); s != "" {
		status := domain.SettlementStatus(s)
		params.Status = &status
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			params.From = &v
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			params.To = &v
		}
	}

	settlements, total, err := h.reportingSvc.ListSettlements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.SettlementResponse, 0, len(settlements))
	for i := range settlements {
		items = append(items, toSettlementResponse(&settlements[i], nil))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.SettlementListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// GetStats handles GET /api/v1/settlements/stats.
func (h *SettlementHandler) GetStats(c *gin.Context) {
	currency := c.Query("currency")

	stats, err := h.reportingSvc.GetStats(c.Request.Context(), currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatsResponse{
		TotalSettlements: stats.TotalSettlements,
		Completed:        stats.Completed,
		Failed:           stats.Failed,
		Planned:          stats.Planned,
		TotalSettled:     stats.TotalSettled,
	})
}

// toPreviewResponse converts a computed preview to DTO.
func toPreviewResponse(p *ports.SettlementPreview) dto.PreviewResponse {
	r := p.Result
	resp := dto.PreviewResponse{
		Currency:         r.Currency,
		PlatformBalance:  r.PlatformBalance.String(),
		ExchangeBalance:  r.ExternalBalance.String(),
		TargetBalance:    r.TargetBalance.String(),
		SettlementAmount: r.SettlementAmount.String(),
		CurrentRatio:     domain.FormatRatio(r.CurrentRatio),
		NeedsSettlement:  r.NeedsSettlement,
		Actionable:       p.Actionable,
		Distributions:    make([]dto.DistributionResponse, 0, len(r.Distributions)),
	}
	for _, d := range r.Distributions {
		resp.Distributions = append(resp.Distributions, dto.DistributionResponse{
			SourceKey:        d.SourceKey,
			Amount:           d.Amount.String(),
			Percentage:       d.Percentage,
			OriginalBalance:  d.OriginalBalance.String(),
			RemainingBalance: d.RemainingBalance.String(),
		})
	}
	return resp
}

// toSettlementResponse converts domain.Settlement to DTO.
func toSettlementResponse(s *domain.Settlement, lines []domain.SettlementLine) dto.SettlementResponse {
	resp := dto.SettlementResponse{
		ID:               s.ID.String(),
		Currency:         s.Currency,
		PlatformBalance:  s.PlatformBalance,
		ExchangeBalance:  s.ExchangeBalance,
		TargetBalance:    s.TargetBalance,
		SettlementAmount: s.SettlementAmount,
		CurrentRatio:     s.CurrentRatio,
		Status:           string(s.Status),
		FailureReason:    s.FailureReason,
		CreatedAt:        s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if s.ExecutedAt != nil {
		e := s.ExecutedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ExecutedAt = &e
	}
	for i := range lines {
		l := &lines[i]
		resp.Lines = append(resp.Lines, dto.SettlementLineResponse{
			ID:               l.ID.String(),
			SourceKey:        l.SourceKey,
			Amount:           l.Amount,
			Percentage:       l.Percentage,
			OriginalBalance:  l.OriginalBalance,
			RemainingBalance: l.RemainingBalance,
			WithdrawalRef:    l.WithdrawalRef,
		})
	}
	return resp
}
