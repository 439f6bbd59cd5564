package service

import (
	"fmt"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
)

// ThinFileOutcome is the binary override applied to thin-file users: either
// an immediate decline or the fixed starter limit.
type ThinFileOutcome struct {
	Approved   bool
	LimitCents int64
}

// ThinFilePolicy classifies users with insufficient history and applies a
// starter policy instead of the standard scorer. A file is thin when the
// total transaction count or the number of distinct transaction dates falls
// below the configured minimums.
type ThinFilePolicy struct {
	cfg     *ScoringConfig
	factors *RiskFactorCalculator
}

// NewThinFilePolicy creates a policy bound to an immutable configuration.
func NewThinFilePolicy(cfg *ScoringConfig, factors *RiskFactorCalculator) *ThinFilePolicy {
	return &ThinFilePolicy{cfg: cfg, factors: factors}
}

// IsThinFile reports whether the history is too sparse for standard scoring.
func (p *ThinFilePolicy) IsThinFile(txns []model.Transaction) bool {
	if len(txns) < p.cfg.MinTransactions {
		return true
	}

	uniqueDays := make(map[time.Time]struct{}, len(txns))
	for _, txn := range txns {
		uniqueDays[txn.Day()] = struct{}{}
	}
	return len(uniqueDays) < p.cfg.MinHistoryDays
}

// Reason explains the thin-file classification for logs and support
// tooling. The transaction-count trigger is reported first when both apply.
func (p *ThinFilePolicy) Reason(txns []model.Transaction) string {
	if len(txns) < p.cfg.MinTransactions {
		return fmt.Sprintf("insufficient transactions (%d < %d)", len(txns), p.cfg.MinTransactions)
	}

	uniqueDays := make(map[time.Time]struct{}, len(txns))
	for _, txn := range txns {
		uniqueDays[txn.Day()] = struct{}{}
	}
	if len(uniqueDays) < p.cfg.MinHistoryDays {
		return fmt.Sprintf("insufficient history (%d days < %d days)", len(uniqueDays), p.cfg.MinHistoryDays)
	}

	return "not a thin file"
}

// Evaluate applies the thin-file policy. The second return value is false
// when the user is not thin-file and the standard scoring path applies.
//
// Thin files with any NSF event are declined outright: there is not enough
// positive history to offset an overdraft. Clean thin files get the
// configured starter limit.
func (p *ThinFilePolicy) Evaluate(txns []model.Transaction) (ThinFileOutcome, bool) {
	if !p.IsThinFile(txns) {
		return ThinFileOutcome{}, false
	}

	if p.factors.NSFCount(txns) > 0 {
		return ThinFileOutcome{Approved: false, LimitCents: 0}, true
	}

	return ThinFileOutcome{Approved: true, LimitCents: p.cfg.ThinFileLimitCents}, true
}
