package valueobject

import "fmt"

// WebhookStatus tracks delivery state of an outbound notification.
type WebhookStatus string

const (
	WebhookPending  WebhookStatus = "pending"
	WebhookSent     WebhookStatus = "sent"
	WebhookFailed   WebhookStatus = "failed"
	WebhookRetrying WebhookStatus = "retrying"
)

// NewWebhookStatus parses a webhook status string.
func NewWebhookStatus(s string) (WebhookStatus, error) {
	switch WebhookStatus(s) {
	case WebhookPending, WebhookSent, WebhookFailed, WebhookRetrying:
		return WebhookStatus(s), nil
	default:
		return "", fmt.Errorf("invalid webhook status %q", s)
	}
}

// String returns the status as a string.
func (s WebhookStatus) String() string {
	return string(s)
}

// WebhookEventType identifies the kind of outbound notification.
type WebhookEventType string

const (
	WebhookPlanCreated  WebhookEventType = "plan_created"
	WebhookDecisionMade WebhookEventType = "decision_made"
)

// String returns the event type as a string.
func (t WebhookEventType) String() string {
	return string(t)
}
