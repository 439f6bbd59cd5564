package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geraldpay/bnpl-engine/internal/domain/event"
	"github.com/geraldpay/bnpl-engine/internal/domain/model"
)

func TestNewDecisionMade(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	d := model.Decision{
		ID:               uuid.New(),
		UserID:           "user-1",
		Approved:         true,
		CreditLimitCents: 50_000,
		GrantedCents:     20_000,
		Factors:          model.DecisionFactors{RiskScore: 93},
	}

	e := event.NewDecisionMade(d, now)

	assert.Equal(t, "bnpl.decision.made", e.EventType())
	assert.Equal(t, d.ID, e.AggregateID())
	assert.Equal(t, "Decision", e.AggregateType())
	assert.Equal(t, now, e.OccurredAt())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(e.Payload(), &payload))
	assert.Equal(t, d.ID.String(), payload["decision_id"])
	assert.Equal(t, true, payload["approved"])
	assert.Equal(t, float64(93), payload["risk_score"])
}

func TestNewPlanCreated(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	planID := uuid.New()
	p := model.Plan{
		ID:         planID,
		UserID:     "user-1",
		DecisionID: uuid.New(),
		TotalCents: 20_000,
		Installments: []model.Installment{
			{ID: uuid.New(), PlanID: planID, DueDate: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), AmountCents: 5_000},
		},
	}

	e := event.NewPlanCreated(p, now)

	assert.Equal(t, "bnpl.plan.created", e.EventType())
	assert.Equal(t, p.ID, e.AggregateID())
	assert.Equal(t, "Plan", e.AggregateType())

	var payload struct {
		PlanID       string `json:"plan_id"`
		Installments []struct {
			DueDate     string `json:"due_date"`
			AmountCents int64  `json:"amount_cents"`
		} `json:"installments"`
	}
	require.NoError(t, json.Unmarshal(e.Payload(), &payload))
	assert.Equal(t, p.ID.String(), payload.PlanID)
	require.Len(t, payload.Installments, 1)
	assert.Equal(t, "2025-04-15", payload.Installments[0].DueDate)
	assert.Equal(t, int64(5_000), payload.Installments[0].AmountCents)
}
