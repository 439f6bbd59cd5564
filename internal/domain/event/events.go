package event

import (
	"encoding/json"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/pkg/events"
)

// DomainEvent is an alias for the shared events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// DecisionMade is raised for every completed evaluation, approved or not.
type DecisionMade struct {
	events.BaseEvent
}

// NewDecisionMade builds the event with its serialized payload.
func NewDecisionMade(d model.Decision, now time.Time) DecisionMade {
	payload, _ := json.Marshal(struct {
		DecisionID       string `json:"decision_id"`
		UserID           string `json:"user_id"`
		Approved         bool   `json:"approved"`
		CreditLimitCents int64  `json:"credit_limit_cents"`
		GrantedCents     int64  `json:"amount_granted_cents"`
		RiskScore        int    `json:"risk_score"`
	}{
		DecisionID:       d.ID.String(),
		UserID:           d.UserID,
		Approved:         d.Approved,
		CreditLimitCents: d.CreditLimitCents,
		GrantedCents:     d.GrantedCents,
		RiskScore:        d.Factors.RiskScore,
	})

	return DecisionMade{
		BaseEvent: events.NewBaseEvent("bnpl.decision.made", d.ID, "Decision", payload, now),
	}
}

// PlanCreated is raised when a repayment plan is built for an approved
// decision.
type PlanCreated struct {
	events.BaseEvent
}

// NewPlanCreated builds the event with its serialized payload.
func NewPlanCreated(p model.Plan, now time.Time) PlanCreated {
	type installment struct {
		InstallmentID string `json:"installment_id"`
		DueDate       string `json:"due_date"`
		AmountCents   int64  `json:"amount_cents"`
	}

	insts := make([]installment, 0, len(p.Installments))
	for _, inst := range p.Installments {
		insts = append(insts, installment{
			InstallmentID: inst.ID.String(),
			DueDate:       inst.DueDate.Format("2006-01-02"),
			AmountCents:   inst.AmountCents,
		})
	}

	payload, _ := json.Marshal(struct {
		PlanID       string        `json:"plan_id"`
		UserID       string        `json:"user_id"`
		DecisionID   string        `json:"decision_id"`
		TotalCents   int64         `json:"total_cents"`
		Installments []installment `json:"installments"`
	}{
		PlanID:       p.ID.String(),
		UserID:       p.UserID,
		DecisionID:   p.DecisionID.String(),
		TotalCents:   p.TotalCents,
		Installments: insts,
	})

	return PlanCreated{
		BaseEvent: events.NewBaseEvent("bnpl.plan.created", p.ID, "Plan", payload, now),
	}
}
