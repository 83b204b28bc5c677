package domain

import (
	"math/big"
	"strings"
	"time"

	"settlement-engine/pkg/apperror"

	"github.com/google/uuid"
)

// BalanceSource is one custody location holding a balance of a single
// currency, e.g. a specific chain's hot wallet. SourceKey is opaque and
// assumed unique per calculation; duplicates are not aggregated.
type BalanceSource struct {
	SourceKey string
	Balance   *big.Int // smallest indivisible unit, never negative
	Label     string   // display-only
}

// CustodyBalance is a persisted snapshot of one source's balance, as
// reported by the balance-query layer. Balance is kept as a decimal string
// end to end; it is parsed into a big.Int only at calculation time because
// derived cryptocurrency magnitudes exceed the safe float64 integer range.
type CustodyBalance struct {
	ID        uuid.UUID `json:"id"`
	SourceKey string    `json:"source_key"`
	Currency  string    `json:"currency"`
	Balance   string    `json:"balance"`
	Label     string    `json:"label,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Source parses the snapshot into a calculation-ready BalanceSource.
func (b *CustodyBalance) Source() (BalanceSource, error) {
	amt, err := ParseAmount(b.Balance)
	if err != nil {
		return BalanceSource{}, err
	}
	return BalanceSource{
		SourceKey: b.SourceKey,
		Balance:   amt,
		Label:     b.Label,
	}, nil
}

// ParseAmount parses a base-10 non-negative integer string into a big.Int.
// Malformed or negative input returns an AMT_001 error; nothing is ever
// silently coerced to zero.
func ParseAmount(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, apperror.ErrInvalidAmount("empty value")
	}

	v, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, apperror.ErrInvalidAmount(trimmed)
	}
	if v.Sign() < 0 {
		return nil, apperror.ErrInvalidAmount(trimmed + " is negative")
	}
	return v, nil
}
