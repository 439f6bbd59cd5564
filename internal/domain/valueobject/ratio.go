package valueobject

import "github.com/shopspring/decimal"

// maxDisplayRatio is the cap used when surfacing an unbounded ratio to
// callers; the engine never serializes an infinite value.
var maxDisplayRatio = decimal.NewFromFloat(999.99)

// Ratio is the income/spend ratio as a tagged value: either a finite
// non-negative decimal or the explicit "unbounded" sentinel produced when a
// user has income but no observable spending. It deliberately avoids IEEE
// infinity semantics.
type Ratio struct {
	value     decimal.Decimal
	unbounded bool
}

// FiniteRatio creates a finite ratio value.
func FiniteRatio(v decimal.Decimal) Ratio {
	return Ratio{value: v}
}

// NeutralRatio is the value used when there is no data to compute a ratio.
func NeutralRatio() Ratio {
	return Ratio{value: decimal.NewFromInt(1)}
}

// UnboundedRatio is the sentinel for income with zero spending.
func UnboundedRatio() Ratio {
	return Ratio{unbounded: true}
}

// IsUnbounded reports whether this is the unbounded sentinel.
func (r Ratio) IsUnbounded() bool {
	return r.unbounded
}

// Value returns the finite ratio value. It is zero for the unbounded
// sentinel; callers must check IsUnbounded first.
func (r Ratio) Value() decimal.Decimal {
	return r.value
}

// GreaterThan reports whether the ratio exceeds d. The unbounded sentinel
// exceeds every finite threshold.
func (r Ratio) GreaterThan(d decimal.Decimal) bool {
	if r.unbounded {
		return true
	}
	return r.value.GreaterThan(d)
}

// Display returns the value safe for serialization: finite ratios rounded to
// two places, the unbounded sentinel capped at 999.99.
func (r Ratio) Display() decimal.Decimal {
	if r.unbounded {
		return maxDisplayRatio
	}
	return r.value.Round(2)
}
