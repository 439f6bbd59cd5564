//go:build integration

package messaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geraldpay/bnpl-engine/internal/domain/event"
	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/infrastructure/messaging"
	"github.com/geraldpay/bnpl-engine/pkg/kafka"
	"github.com/geraldpay/bnpl-engine/pkg/testutil"
)

func TestKafkaEventPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	kc := testutil.NewKafkaContainer(ctx, t)
	t.Cleanup(func() { kc.Cleanup(t) })

	const topic = "bnpl.events.test"

	producer := kafka.NewProducer(kafka.Config{Brokers: kc.Brokers})
	t.Cleanup(func() { _ = producer.Close() })
	publisher := messaging.NewKafkaEventPublisher(producer, topic)

	decision := model.Decision{
		ID:       uuid.New(),
		UserID:   testutil.TestUserHealthy,
		Approved: true,
		Factors:  model.DecisionFactors{RiskScore: 93},
	}
	e := event.NewDecisionMade(decision, time.Now().UTC())

	publishCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, publisher.Publish(publishCtx, e))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: kc.Brokers,
		Topic:   topic,
		GroupID: "bnpl-test-consumer",
	})
	t.Cleanup(func() { _ = reader.Close() })

	readCtx, cancelRead := context.WithTimeout(ctx, 30*time.Second)
	defer cancelRead()
	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	assert.Equal(t, decision.ID.String(), string(msg.Key))
	assert.JSONEq(t, string(e.Payload()), string(msg.Value))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "bnpl.decision.made", headers["event_type"])
	assert.Equal(t, "Decision", headers["aggregate_type"])
}
