package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
	"github.com/geraldpay/bnpl-engine/internal/infrastructure/metrics"
)

// LedgerNotifier delivers decision outcomes to the ledger service webhook.
// Delivery is best effort with bounded retries; every delivery is recorded
// through the webhook repository regardless of outcome. An empty webhook
// URL disables delivery entirely.
type LedgerNotifier struct {
	webhookURL   string
	client       *http.Client
	maxAttempts  int
	retryBackoff time.Duration
	webhooks     port.WebhookRepository
	logger       *slog.Logger
	now          func() time.Time
}

func NewLedgerNotifier(
	webhookURL string,
	timeout time.Duration,
	maxAttempts int,
	retryBackoff time.Duration,
	webhooks port.WebhookRepository,
	logger *slog.Logger,
) *LedgerNotifier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &LedgerNotifier{
		webhookURL:   webhookURL,
		client:       &http.Client{Timeout: timeout},
		maxAttempts:  maxAttempts,
		retryBackoff: retryBackoff,
		webhooks:     webhooks,
		logger:       logger,
		now:          time.Now,
	}
}

func (n *LedgerNotifier) NotifyDecisionMade(ctx context.Context, d model.Decision) error {
	payload, err := json.Marshal(map[string]any{
		"event":                "decision_made",
		"decision_id":          d.ID.String(),
		"user_id":              d.UserID,
		"approved":             d.Approved,
		"credit_limit_cents":   d.CreditLimitCents,
		"amount_granted_cents": d.GrantedCents,
	})
	if err != nil {
		return fmt.Errorf("marshaling decision payload: %w", err)
	}
	return n.deliver(ctx, valueobject.WebhookDecisionMade, payload)
}

func (n *LedgerNotifier) NotifyPlanCreated(ctx context.Context, p model.Plan) error {
	installments := make([]map[string]any, 0, len(p.Installments))
	for _, inst := range p.Installments {
		installments = append(installments, map[string]any{
			"installment_id": inst.ID.String(),
			"due_date":       inst.DueDate.Format("2006-01-02"),
			"amount_cents":   inst.AmountCents,
		})
	}

	payload, err := json.Marshal(map[string]any{
		"event":        "plan_created",
		"plan_id":      p.ID.String(),
		"user_id":      p.UserID,
		"decision_id":  p.DecisionID.String(),
		"total_cents":  p.TotalCents,
		"installments": installments,
	})
	if err != nil {
		return fmt.Errorf("marshaling plan payload: %w", err)
	}
	return n.deliver(ctx, valueobject.WebhookPlanCreated, payload)
}

func (n *LedgerNotifier) deliver(ctx context.Context, eventType valueobject.WebhookEventType, payload []byte) error {
	if n.webhookURL == "" {
		return nil
	}

	record := model.NewOutboundWebhook(eventType, payload, n.webhookURL, n.now())
	if err := n.webhooks.Save(ctx, record); err != nil {
		n.logger.Error("recording webhook", "webhook_id", record.ID, "error", err)
	}

	var lastErr error
	for attempt := 0; attempt < n.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := n.retryBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
			}
			if ctx.Err() != nil {
				lastErr = ctx.Err()
				break
			}
			record.MarkRetrying(n.now())
			if err := n.webhooks.Update(ctx, record); err != nil {
				n.logger.Error("updating webhook", "webhook_id", record.ID, "error", err)
			}
		}

		if err := n.post(ctx, payload); err != nil {
			lastErr = err
			continue
		}

		record.MarkSent(n.now())
		if err := n.webhooks.Update(ctx, record); err != nil {
			n.logger.Error("updating webhook", "webhook_id", record.ID, "error", err)
		}
		metrics.WebhookDeliveriesTotal.WithLabelValues(string(eventType), "sent").Inc()
		return nil
	}

	record.MarkFailed(n.now())
	if err := n.webhooks.Update(ctx, record); err != nil {
		n.logger.Error("updating webhook", "webhook_id", record.ID, "error", err)
	}
	metrics.WebhookDeliveriesTotal.WithLabelValues(string(eventType), "failed").Inc()
	return fmt.Errorf("delivering %s webhook after %d attempts: %w", eventType, record.Attempts, lastErr)
}

func (n *LedgerNotifier) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
