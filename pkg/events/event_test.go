package events_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/geraldpay/bnpl-engine/pkg/events"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	occurred := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"approved":true}`)

	evt := events.NewBaseEvent("bnpl.decision.made", aggregateID, "Decision", payload, occurred)

	assert.NotEqual(t, uuid.Nil, evt.EventID())
	assert.Equal(t, "bnpl.decision.made", evt.EventType())
	assert.Equal(t, aggregateID, evt.AggregateID())
	assert.Equal(t, "Decision", evt.AggregateType())
	assert.Equal(t, occurred, evt.OccurredAt())
	assert.Equal(t, payload, evt.Payload())
}

func TestNewBaseEvent_UniqueEventIDs(t *testing.T) {
	aggregateID := uuid.New()
	now := time.Now().UTC()

	a := events.NewBaseEvent("bnpl.plan.created", aggregateID, "Plan", nil, now)
	b := events.NewBaseEvent("bnpl.plan.created", aggregateID, "Plan", nil, now)

	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestNewBaseEvent_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	occurred := time.Date(2025, 6, 1, 7, 0, 0, 0, loc)

	evt := events.NewBaseEvent("bnpl.decision.made", uuid.New(), "Decision", nil, occurred)

	assert.Equal(t, time.UTC, evt.OccurredAt().Location())
	assert.True(t, evt.OccurredAt().Equal(occurred))
}
