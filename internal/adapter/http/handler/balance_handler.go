package handler

import (
	"settlement-engine/internal/adapter/http/dto"
	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"
	"settlement-engine/pkg/apperror"
	"settlement-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// BalanceHandler handles custody balance endpoints.
type BalanceHandler struct {
	balanceSvc ports.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceSvc ports.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceSvc: balanceSvc}
}

// Record handles POST /api/v1/balances.
func (h *BalanceHandler) Record(c *gin.Context) {
	var req dto.RecordBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	balance, err := h.balanceSvc.Record(c.Request.Context(), ports.RecordBalanceRequest{
		SourceKey: req.SourceKey,
		Currency:  req.Currency,
		Balance:   req.Balance,
		Label:     req.Label,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBalanceResponse(balance))
}

// List handles GET /api/v1/balances.
func (h *BalanceHandler) List(c *gin.Context) {
	currency := c.Query("currency")
	if currency == "" {
		response.Error(c, apperror.Validation("currency query parameter is required"))
		return
	}

	balances, err := h.balanceSvc.List(c.Request.Context(), currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.CustodyBalanceResponse, 0, len(balances))
	for i := range balances {
		items = append(items, toBalanceResponse(&balances[i]))
	}
	response.OK(c, items)
}

// toBalanceResponse converts domain.CustodyBalance to DTO.
func toBalanceResponse(b *domain.CustodyBalance) dto.CustodyBalanceResponse {
	return dto.CustodyBalanceResponse{
		SourceKey: b.SourceKey,
		Currency:  b.Currency,
		Balance:   b.Balance,
		Label:     b.Label,
		UpdatedAt: b.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
