package domain

import (
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TargetRatio is the design goal: platform-held and exchange-held balances
// of a currency should be equal.
const TargetRatio = 1.0

// DistributionTarget is one line of a computed withdrawal plan, derived
// from a BalanceSource.
type DistributionTarget struct {
	SourceKey        string
	Amount           *big.Int // units to withdraw from this source
	Percentage       float64  // share of platform balance, 2-decimal precision, informational
	OriginalBalance  *big.Int
	RemainingBalance *big.Int // OriginalBalance - Amount, always >= 0
}

// DistributionResult is the full output of one distribution calculation.
// All big.Int fields are exact; CurrentRatio and the percentage fields are
// informational floats and must never feed back into amount arithmetic.
type DistributionResult struct {
	Currency         string
	PlatformBalance  *big.Int // sum of source balances
	ExternalBalance  *big.Int
	TargetBalance    *big.Int // (PlatformBalance + ExternalBalance) / 2, floor
	SettlementAmount *big.Int // TargetBalance - ExternalBalance, clamped at 0
	Distributions    []DistributionTarget
	NeedsSettlement  bool
	CurrentRatio     float64
	TargetRatio      float64
}

// FormatRatio renders a balance ratio for storage and display. Infinity
// (exchange side empty) becomes "Inf" because JSON has no representation
// for it as a number.
func FormatRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "Inf"
	}
	return strconv.FormatFloat(ratio, 'f', 4, 64)
}

// ParseRatio reverses FormatRatio. Unparseable input comes back as 0.
func ParseRatio(s string) float64 {
	if s == "Inf" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// SettlementStatus is the lifecycle state of an executed settlement record.
type SettlementStatus string

const (
	SettlementStatusPlanned   SettlementStatus = "PLANNED"
	SettlementStatusCompleted SettlementStatus = "COMPLETED"
	SettlementStatusFailed    SettlementStatus = "FAILED"
)

// Settlement is the persisted record of one executed (or attempted)
// settlement run. Amounts are decimal strings in the smallest unit.
type Settlement struct {
	ID               uuid.UUID        `json:"id"`
	Currency         string           `json:"currency"`
	PlatformBalance  string           `json:"platform_balance"`
	ExchangeBalance  string           `json:"exchange_balance"`
	TargetBalance    string           `json:"target_balance"`
	SettlementAmount string           `json:"settlement_amount"`
	CurrentRatio     string           `json:"current_ratio"` // formatted; may be "Inf", so never a JSON number
	Status           SettlementStatus `json:"status"`
	FailureReason    *string          `json:"failure_reason,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	ExecutedAt       *time.Time       `json:"executed_at,omitempty"`
}

// IsTerminal returns true if the settlement is in a final state.
func (s *Settlement) IsTerminal() bool {
	return s.Status == SettlementStatusCompleted || s.Status == SettlementStatusFailed
}

// SettlementLine is one persisted withdrawal line of a settlement.
type SettlementLine struct {
	ID               uuid.UUID `json:"id"`
	SettlementID     uuid.UUID `json:"settlement_id"`
	SourceKey        string    `json:"source_key"`
	Amount           string    `json:"amount"`
	Percentage       float64   `json:"percentage"`
	OriginalBalance  string    `json:"original_balance"`
	RemainingBalance string    `json:"remaining_balance"`
	WithdrawalRef    *string   `json:"withdrawal_ref,omitempty"` // exchange-side reference once dispatched
}
