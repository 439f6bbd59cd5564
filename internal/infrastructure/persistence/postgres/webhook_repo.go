package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
)

// WebhookRepository is the pgx-backed implementation of
// port.WebhookRepository.
type WebhookRepository struct {
	pool *pgxpool.Pool
}

func NewWebhookRepository(pool *pgxpool.Pool) *WebhookRepository {
	return &WebhookRepository{pool: pool}
}

func (r *WebhookRepository) Save(ctx context.Context, w model.OutboundWebhook) error {
	const q = `
		INSERT INTO bnpl_outbound_webhooks (
			id, event_type, payload, target_url, status, attempts, last_attempt_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, q,
		w.ID, w.EventType, w.Payload, w.TargetURL, w.Status, w.Attempts, w.LastAttemptAt, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting webhook: %w", err)
	}
	return nil
}

func (r *WebhookRepository) Update(ctx context.Context, w model.OutboundWebhook) error {
	const q = `
		UPDATE bnpl_outbound_webhooks
		SET status = $1, attempts = $2, last_attempt_at = $3
		WHERE id = $4`

	_, err := r.pool.Exec(ctx, q, w.Status, w.Attempts, w.LastAttemptAt, w.ID)
	if err != nil {
		return fmt.Errorf("updating webhook: %w", err)
	}
	return nil
}
