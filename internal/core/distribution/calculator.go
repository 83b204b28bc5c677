package distribution

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"settlement-engine/internal/core/domain"
	"settlement-engine/pkg/apperror"
)

var (
	two      = big.NewInt(2)
	pctScale = big.NewInt(10_000) // 2-decimal percentage precision without float division
)

// Calculator computes proportional withdrawal plans that restore a 1:1
// split between platform-held custody balances and an external exchange
// balance. It is stateless and safe for concurrent use; every call
// allocates its result fresh. All amount arithmetic is exact big.Int;
// the float ratio and percentage fields are diagnostic only.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate computes the withdrawal plan for the given custody sources and
// exchange-side balance. Amounts are integers in the currency's smallest
// unit.
//
// The target balance is (platform + external) / 2 with floor division: when
// the total is odd the spare unit is dropped, leaving the exchange side one
// unit short. This asymmetry is intentional and callers depend on it being
// stable. Truncating proportional division under-allocates by the
// accumulated remainder; the entire remainder is then added to the single
// largest line (first wins on ties) so the line amounts always sum to the
// settlement amount exactly.
//
// When both sides are zero the ratio is reported as 0, never NaN or Inf.
func (c *Calculator) Calculate(sources []domain.BalanceSource, externalBalance *big.Int, currency string) (*domain.DistributionResult, error) {
	if err := validateBalance(externalBalance, "external balance"); err != nil {
		return nil, err
	}
	for _, src := range sources {
		if err := validateBalance(src.Balance, "source "+src.SourceKey); err != nil {
			return nil, err
		}
	}

	platformBalance := new(big.Int)
	for _, src := range sources {
		platformBalance.Add(platformBalance, src.Balance)
	}

	totalBalance := new(big.Int).Add(platformBalance, externalBalance)
	targetBalance := new(big.Int).Quo(totalBalance, two)
	settlementAmount := new(big.Int).Sub(targetBalance, externalBalance)

	result := &domain.DistributionResult{
		Currency:        currency,
		PlatformBalance: platformBalance,
		ExternalBalance: new(big.Int).Set(externalBalance),
		TargetBalance:   targetBalance,
		NeedsSettlement: settlementAmount.Sign() > 0,
		CurrentRatio:    currentRatio(platformBalance, externalBalance),
		TargetRatio:     domain.TargetRatio,
		Distributions:   []domain.DistributionTarget{},
	}

	if !result.NeedsSettlement {
		// Raw settlement amount may be negative here; clamp to zero.
		result.SettlementAmount = new(big.Int)
		return result, nil
	}
	result.SettlementAmount = settlementAmount

	for _, src := range sources {
		target := domain.DistributionTarget{
			SourceKey:       src.SourceKey,
			Percentage:      percentage(src.Balance, platformBalance),
			OriginalBalance: new(big.Int).Set(src.Balance),
		}

		amount := new(big.Int)
		if platformBalance.Sign() > 0 {
			amount.Mul(settlementAmount, src.Balance)
			amount.Quo(amount, platformBalance)
		}
		if amount.Sign() == 0 {
			continue
		}

		target.Amount = amount
		target.RemainingBalance = new(big.Int).Sub(src.Balance, amount)
		result.Distributions = append(result.Distributions, target)
	}

	applyRoundingCorrection(result)

	return result, nil
}

// CalculateWithThreshold runs Calculate and suppresses economically
// insignificant plans: it returns (nil, nil) when no settlement is needed
// or the settlement amount is below minSettlementAmount (strict integer
// comparison). A nil threshold means zero.
func (c *Calculator) CalculateWithThreshold(sources []domain.BalanceSource, externalBalance *big.Int, currency string, minSettlementAmount *big.Int) (*domain.DistributionResult, error) {
	result, err := c.Calculate(sources, externalBalance, currency)
	if err != nil {
		return nil, err
	}
	if !result.NeedsSettlement {
		return nil, nil
	}
	if minSettlementAmount != nil && result.SettlementAmount.Cmp(minSettlementAmount) < 0 {
		return nil, nil
	}
	return result, nil
}

// CalculateWithRatioThreshold runs Calculate and suppresses plans whose
// platform/exchange ratio already sits within maxRatioDeviation of the 1:1
// target. It returns (nil, nil) when no action is needed. This filter is
// independent of the amount threshold; callers pick one policy.
func (c *Calculator) CalculateWithRatioThreshold(sources []domain.BalanceSource, externalBalance *big.Int, currency string, maxRatioDeviation float64) (*domain.DistributionResult, error) {
	result, err := c.Calculate(sources, externalBalance, currency)
	if err != nil {
		return nil, err
	}
	if !result.NeedsSettlement {
		return nil, nil
	}
	if math.Abs(result.CurrentRatio-domain.TargetRatio) <= maxRatioDeviation {
		return nil, nil
	}
	return result, nil
}

// Validate re-derives the calculator's own invariants from a result:
// the line amounts must sum to the settlement amount exactly, and when a
// settlement is needed the percentages must sum to 100. A failure means a
// defect in the calculator or a tampered result and is returned as a
// DIST_001 error; callers executing real withdrawals are expected to treat
// it as fatal.
//
// The percentage check runs in integer basis points, never accumulated
// floats. Each line's percentage was floored, losing under one basis point,
// so the sum may legitimately fall short of 10000 by up to one basis point
// per line; it must never exceed 10000.
func (c *Calculator) Validate(result *domain.DistributionResult) error {
	if result == nil {
		return apperror.Validation("nil distribution result")
	}

	distributed := new(big.Int)
	for _, d := range result.Distributions {
		distributed.Add(distributed, d.Amount)
	}
	if distributed.Cmp(result.SettlementAmount) != 0 {
		return apperror.ErrDistributionInvariant(fmt.Sprintf(
			"distributed %s != settlement amount %s",
			distributed.String(), result.SettlementAmount.String(),
		))
	}

	if result.NeedsSettlement && result.PlatformBalance.Sign() > 0 {
		var sumBP int64
		for _, d := range result.Distributions {
			// Percentage is k/100 for integer k; Round recovers k exactly.
			sumBP += int64(math.Round(d.Percentage * 100))
		}
		deficit := 10_000 - sumBP
		if deficit < 0 || deficit > int64(len(result.Distributions)) {
			return apperror.ErrDistributionInvariant(fmt.Sprintf(
				"percentages sum to %d basis points, expected 10000 (within %d of flooring)",
				sumBP, len(result.Distributions),
			))
		}
	}

	return nil
}

// PriorityOrder returns the distributions sorted by amount descending,
// preserving input order among equal amounts. The result is a copy; the
// input is not mutated.
func (c *Calculator) PriorityOrder(result *domain.DistributionResult) []domain.DistributionTarget {
	ordered := make([]domain.DistributionTarget, len(result.Distributions))
	copy(ordered, result.Distributions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Amount.Cmp(ordered[j].Amount) > 0
	})
	return ordered
}

// applyRoundingCorrection adds the truncation remainder to the single
// strictly largest line so that Σ amounts == settlementAmount exactly.
func applyRoundingCorrection(result *domain.DistributionResult) {
	if len(result.Distributions) == 0 {
		return
	}

	distributed := new(big.Int)
	for _, d := range result.Distributions {
		distributed.Add(distributed, d.Amount)
	}

	roundingError := new(big.Int).Sub(result.SettlementAmount, distributed)
	if roundingError.Sign() == 0 {
		return
	}

	largest := 0
	for i := 1; i < len(result.Distributions); i++ {
		if result.Distributions[i].Amount.Cmp(result.Distributions[largest].Amount) > 0 {
			largest = i
		}
	}

	line := &result.Distributions[largest]
	line.Amount.Add(line.Amount, roundingError)
	line.RemainingBalance.Sub(line.OriginalBalance, line.Amount)
}

// percentage returns floor(balance * 10000 / platform) / 100, the source's
// share of the platform balance at 2-decimal precision. Zero when the
// platform balance is zero.
func percentage(balance, platform *big.Int) float64 {
	if platform.Sign() == 0 {
		return 0
	}
	scaled := new(big.Int).Mul(balance, pctScale)
	scaled.Quo(scaled, platform)
	return float64(scaled.Int64()) / 100
}

// currentRatio returns platform/external as a float. +Inf when only the
// external side is zero; 0 when both sides are zero.
func currentRatio(platform, external *big.Int) float64 {
	if external.Sign() == 0 {
		if platform.Sign() == 0 {
			return 0
		}
		return math.Inf(1)
	}
	ratio, _ := new(big.Float).
		Quo(new(big.Float).SetInt(platform), new(big.Float).SetInt(external)).
		Float64()
	return ratio
}

func validateBalance(v *big.Int, what string) error {
	if v == nil {
		return apperror.ErrInvalidAmount(what + " is missing")
	}
	if v.Sign() < 0 {
		return apperror.ErrInvalidAmount(what + " is negative")
	}
	return nil
}
