package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

// OutboundWebhook is an outbound ledger notification with delivery tracking.
// Delivery is best-effort: the record captures the final status and attempt
// count after the retry budget is spent.
type OutboundWebhook struct {
	ID            uuid.UUID
	EventType     valueobject.WebhookEventType
	Payload       []byte
	TargetURL     string
	Status        valueobject.WebhookStatus
	Attempts      int
	LastAttemptAt *time.Time
	CreatedAt     time.Time
}

// NewOutboundWebhook creates a pending webhook record.
func NewOutboundWebhook(eventType valueobject.WebhookEventType, payload []byte, targetURL string, now time.Time) OutboundWebhook {
	return OutboundWebhook{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		TargetURL: targetURL,
		Status:    valueobject.WebhookPending,
		CreatedAt: now.UTC(),
	}
}

// MarkSent records a successful delivery attempt.
func (w *OutboundWebhook) MarkSent(now time.Time) {
	w.Status = valueobject.WebhookSent
	w.recordAttempt(now)
}

// MarkFailed records a terminally failed delivery attempt.
func (w *OutboundWebhook) MarkFailed(now time.Time) {
	w.Status = valueobject.WebhookFailed
	w.recordAttempt(now)
}

// MarkRetrying records a failed attempt that will be retried.
func (w *OutboundWebhook) MarkRetrying(now time.Time) {
	w.Status = valueobject.WebhookRetrying
	w.recordAttempt(now)
}

func (w *OutboundWebhook) recordAttempt(now time.Time) {
	w.Attempts++
	at := now.UTC()
	w.LastAttemptAt = &at
}
