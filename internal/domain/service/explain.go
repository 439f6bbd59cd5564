package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
)

// ExplainDecision renders a human-readable account of a decision for logs
// and support tooling. Never shown to end users as-is.
func ExplainDecision(d model.Decision) string {
	f := d.Factors

	var b strings.Builder
	if d.Approved {
		limit := decimal.NewFromInt(d.CreditLimitCents).Div(decimal.NewFromInt(100))
		fmt.Fprintf(&b, "Decision: APPROVED ($%s limit)\n", limit.StringFixed(0))
	} else {
		b.WriteString("Decision: DECLINED\n")
	}
	fmt.Fprintf(&b, "Risk Score: %d/100\n", f.RiskScore)
	b.WriteString("\nContributing Factors:\n")

	adb := f.AvgDailyBalance
	switch {
	case adb.IsNegative():
		fmt.Fprintf(&b, "  - Average balance: $%s (NEGATIVE - high risk)\n", adb.StringFixed(2))
	case adb.LessThan(decimal.NewFromInt(100)):
		fmt.Fprintf(&b, "  - Average balance: $%s (low cushion)\n", adb.StringFixed(2))
	case adb.LessThan(decimal.NewFromInt(500)):
		fmt.Fprintf(&b, "  - Average balance: $%s (moderate cushion)\n", adb.StringFixed(2))
	default:
		fmt.Fprintf(&b, "  - Average balance: $%s (healthy cushion)\n", adb.StringFixed(2))
	}

	ratio := f.IncomeRatio
	switch {
	case ratio.LessThan(decimal.NewFromFloat(0.8)):
		fmt.Fprintf(&b, "  - Income/spend ratio: %s (spending exceeds income)\n", ratio.StringFixed(2))
	case ratio.LessThan(decimal.NewFromInt(1)):
		fmt.Fprintf(&b, "  - Income/spend ratio: %s (near break-even)\n", ratio.StringFixed(2))
	case ratio.LessThan(decimal.NewFromFloat(1.3)):
		fmt.Fprintf(&b, "  - Income/spend ratio: %s (sustainable)\n", ratio.StringFixed(2))
	default:
		fmt.Fprintf(&b, "  - Income/spend ratio: %s (healthy margin)\n", ratio.StringFixed(2))
	}

	switch {
	case f.NSFCount == 0:
		fmt.Fprintf(&b, "  - NSF events: %d (excellent)", f.NSFCount)
	case f.NSFCount <= 2:
		fmt.Fprintf(&b, "  - NSF events: %d (minor concern)", f.NSFCount)
	default:
		fmt.Fprintf(&b, "  - NSF events: %d (significant concern)", f.NSFCount)
	}

	return b.String()
}

// Explain renders the decision explanation, with the thin-file
// classification reason appended when it applies to this history.
func (e *DecisionEngine) Explain(d model.Decision, txns []model.Transaction) string {
	s := ExplainDecision(d)
	if len(txns) > 0 && e.thinFile.IsThinFile(txns) {
		s += "\nThin file: " + e.thinFile.Reason(txns)
	}
	return s
}
