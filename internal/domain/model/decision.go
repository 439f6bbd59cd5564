package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DecisionFactors are the risk signals that led to a decision. They are
// surfaced to the caller for transparency on every non-empty evaluation,
// including thin-file outcomes where they do not drive the result.
type DecisionFactors struct {
	// AvgDailyBalance is the 90-day carry-forward mean balance in major
	// currency units, rounded to two places.
	AvgDailyBalance decimal.Decimal
	// IncomeRatio is the display value of the income/spend ratio; the
	// unbounded sentinel surfaces as 999.99.
	IncomeRatio decimal.Decimal
	// NSFCount is the number of NSF/overdraft events in the window.
	NSFCount int
	// RiskScore is the composite 0-100 score (higher = lower risk).
	RiskScore int
	// ScoreBand is the human-readable label for the score range, e.g.
	// "starter" or "very_good".
	ScoreBand string
}

// Decision is the outcome of one BNPL evaluation. It is created exactly once
// per request and is immutable afterwards, except for PlanID being attached
// once the repayment plan has been built.
type Decision struct {
	ID               uuid.UUID
	UserID           string
	Approved         bool
	CreditLimitCents int64
	RequestedCents   int64
	GrantedCents     int64
	PlanID           *uuid.UUID
	Factors          DecisionFactors
	CreatedAt        time.Time
}
