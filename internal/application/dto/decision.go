package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

// maxRequestedCents bounds a single BNPL request to $10,000.
const maxRequestedCents = 1_000_000

// DecisionRequest asks for a credit decision for one user.
type DecisionRequest struct {
	UserID               string `json:"user_id"`
	RequestedAmountCents int64  `json:"requested_amount_cents"`
}

// Validate checks the request before any I/O happens.
func (r DecisionRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", port.ErrInvalidRequest)
	}
	if r.RequestedAmountCents <= 0 {
		return fmt.Errorf("%w: requested_amount_cents must be positive", port.ErrInvalidRequest)
	}
	if r.RequestedAmountCents > maxRequestedCents {
		return fmt.Errorf("%w: requested_amount_cents exceeds %d", port.ErrInvalidRequest, maxRequestedCents)
	}
	return nil
}

// DecisionFactors mirrors the risk signals behind a decision.
type DecisionFactors struct {
	AvgDailyBalance string `json:"avg_daily_balance"`
	IncomeRatio     string `json:"income_ratio"`
	NSFCount        int    `json:"nsf_count"`
	RiskScore       int    `json:"risk_score"`
	ScoreBand       string `json:"score_band"`
}

// DecisionResponse is the outcome of one evaluation.
type DecisionResponse struct {
	DecisionID           string          `json:"decision_id"`
	UserID               string          `json:"user_id"`
	Approved             bool            `json:"approved"`
	CreditLimitCents     int64           `json:"credit_limit_cents"`
	RequestedAmountCents int64           `json:"requested_amount_cents"`
	AmountGrantedCents   int64           `json:"amount_granted_cents"`
	PlanID               *string         `json:"plan_id,omitempty"`
	Factors              DecisionFactors `json:"factors"`
	CreatedAt            string          `json:"created_at"`
	Plan                 *PlanResponse   `json:"plan,omitempty"`
}

// DecisionHistoryResponse lists a user's past decisions, newest first.
type DecisionHistoryResponse struct {
	UserID    string             `json:"user_id"`
	Decisions []DecisionResponse `json:"decisions"`
}

// FromDecision maps a domain decision onto the wire shape.
func FromDecision(d model.Decision) DecisionResponse {
	resp := DecisionResponse{
		DecisionID:           d.ID.String(),
		UserID:               d.UserID,
		Approved:             d.Approved,
		CreditLimitCents:     d.CreditLimitCents,
		RequestedAmountCents: d.RequestedCents,
		AmountGrantedCents:   d.GrantedCents,
		Factors: DecisionFactors{
			AvgDailyBalance: d.Factors.AvgDailyBalance.StringFixed(2),
			IncomeRatio:     d.Factors.IncomeRatio.StringFixed(2),
			NSFCount:        d.Factors.NSFCount,
			RiskScore:       d.Factors.RiskScore,
			ScoreBand:       d.Factors.ScoreBand,
		},
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if d.PlanID != nil {
		id := d.PlanID.String()
		resp.PlanID = &id
	}
	return resp
}
