package distribution

import (
	"fmt"
	"math/big"
	"strings"

	"settlement-engine/internal/core/domain"
)

// FormatResult renders a human-readable fixed-point report of a result,
// dividing every amount by 10^decimals. Display-only; the precision loss
// here never feeds back into arithmetic.
func FormatResult(result *domain.DistributionResult, symbol string, decimals int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Settlement distribution (%s)\n", result.Currency)
	fmt.Fprintf(&b, "  platform balance:  %s %s\n", FormatUnits(result.PlatformBalance, decimals), symbol)
	fmt.Fprintf(&b, "  exchange balance:  %s %s\n", FormatUnits(result.ExternalBalance, decimals), symbol)
	fmt.Fprintf(&b, "  target balance:    %s %s\n", FormatUnits(result.TargetBalance, decimals), symbol)
	fmt.Fprintf(&b, "  settlement amount: %s %s\n", FormatUnits(result.SettlementAmount, decimals), symbol)
	fmt.Fprintf(&b, "  current ratio:     %.4f (target %.2f)\n", result.CurrentRatio, result.TargetRatio)

	if !result.NeedsSettlement {
		b.WriteString("  no settlement needed\n")
		return b.String()
	}

	b.WriteString("  withdrawals:\n")
	for _, d := range result.Distributions {
		fmt.Fprintf(&b, "    %-24s %s %s (%.2f%%), %s remaining\n",
			d.SourceKey,
			FormatUnits(d.Amount, decimals), symbol,
			d.Percentage,
			FormatUnits(d.RemainingBalance, decimals),
		)
	}

	return b.String()
}

// FormatUnits renders an integer amount in the smallest unit as a
// fixed-point decimal string with the given number of decimals.
func FormatUnits(v *big.Int, decimals int) string {
	if decimals <= 0 {
		return v.String()
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(v, scale, new(big.Int))

	fracStr := frac.String()
	if pad := decimals - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	return whole.String() + "." + fracStr
}
