package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
)

// thinFileApprovedScore is the score surfaced for approved thin-file users.
// The thin-file path bypasses the scorer, so the exposed score is the floor
// of the lowest approving tier rather than a computed value.
const thinFileApprovedScore = 30

// DecisionEngine orchestrates the scoring pipeline into one approval
// decision. It holds only immutable configuration and stateless
// collaborators, so a single instance is safe for concurrent use.
type DecisionEngine struct {
	cfg      *ScoringConfig
	factors  *RiskFactorCalculator
	thinFile *ThinFilePolicy
	scorer   *RiskScorer
	limits   *CreditLimitResolver
}

// NewDecisionEngine wires the scoring pipeline around a validated
// configuration.
func NewDecisionEngine(cfg *ScoringConfig) *DecisionEngine {
	factors := NewRiskFactorCalculator()
	return &DecisionEngine{
		cfg:      cfg,
		factors:  factors,
		thinFile: NewThinFilePolicy(cfg, factors),
		scorer:   NewRiskScorer(cfg),
		limits:   NewCreditLimitResolver(cfg),
	}
}

// Decide evaluates a user's transaction history against the requested
// amount and returns a complete decision.
//
// Three terminal paths:
//  1. Empty history: immediate decline with zero-valued factors.
//  2. Thin file: the binary starter policy; factors are still computed for
//     transparency even though they do not drive the outcome.
//  3. Standard scoring: factors -> composite score -> tier limit.
//
// When approved, granted = min(requested, limit) and a plan identifier is
// generated; the repayment plan itself is built separately.
func (e *DecisionEngine) Decide(userID string, requestedCents int64, txns []model.Transaction, now time.Time) model.Decision {
	if len(txns) == 0 {
		return model.Decision{
			ID:             uuid.New(),
			UserID:         userID,
			Approved:       false,
			RequestedCents: requestedCents,
			Factors: model.DecisionFactors{
				AvgDailyBalance: decimal.Zero,
				IncomeRatio:     decimal.Zero,
				ScoreBand:       ScoreBand(0),
			},
			CreatedAt: now.UTC(),
		}
	}

	if outcome, thin := e.thinFile.Evaluate(txns); thin {
		return e.thinFileDecision(userID, requestedCents, txns, outcome, now)
	}

	factors, err := e.factors.Calculate(txns)
	if err != nil {
		// Unreachable: the empty-input path above is the only trigger.
		panic(err)
	}

	score := e.scorer.Composite(factors)
	limitCents := e.limits.Resolve(score)
	approved := limitCents > 0

	return e.newDecision(userID, requestedCents, approved, limitCents, factors, score, now)
}

func (e *DecisionEngine) thinFileDecision(
	userID string,
	requestedCents int64,
	txns []model.Transaction,
	outcome ThinFileOutcome,
	now time.Time,
) model.Decision {
	factors, err := e.factors.Calculate(txns)
	if err != nil {
		panic(err)
	}

	score := 0
	if outcome.Approved {
		score = thinFileApprovedScore
	}

	return e.newDecision(userID, requestedCents, outcome.Approved, outcome.LimitCents, factors, score, now)
}

func (e *DecisionEngine) newDecision(
	userID string,
	requestedCents int64,
	approved bool,
	limitCents int64,
	factors RiskFactors,
	score int,
	now time.Time,
) model.Decision {
	var grantedCents int64
	var planID *uuid.UUID
	if approved {
		grantedCents = min(requestedCents, limitCents)
		id := uuid.New()
		planID = &id
	}

	return model.Decision{
		ID:               uuid.New(),
		UserID:           userID,
		Approved:         approved,
		CreditLimitCents: limitCents,
		RequestedCents:   requestedCents,
		GrantedCents:     grantedCents,
		PlanID:           planID,
		Factors: model.DecisionFactors{
			AvgDailyBalance: factors.AvgDailyBalance.Round(2),
			IncomeRatio:     factors.IncomeRatio.Display(),
			NSFCount:        factors.NSFCount,
			RiskScore:       score,
			ScoreBand:       ScoreBand(score),
		},
		CreatedAt: now.UTC(),
	}
}
