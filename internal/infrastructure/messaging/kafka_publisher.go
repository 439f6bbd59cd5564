package messaging

import (
	"context"

	"github.com/geraldpay/bnpl-engine/internal/domain/event"
	"github.com/geraldpay/bnpl-engine/pkg/kafka"
)

// KafkaEventPublisher publishes domain events to a single topic, keyed by
// aggregate id so events for one decision or plan stay ordered.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaEventPublisher(producer *kafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, e event.DomainEvent) error {
	return p.producer.Publish(ctx, p.topic, kafka.Message{
		Key:   []byte(e.AggregateID().String()),
		Value: e.Payload(),
		Headers: map[string]string{
			"event_id":       e.EventID().String(),
			"event_type":     e.EventType(),
			"aggregate_type": e.AggregateType(),
		},
	})
}
