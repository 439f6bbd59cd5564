package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/domain/event"
	"github.com/geraldpay/bnpl-engine/internal/domain/model"
)

// DecisionRepository persists credit decisions.
type DecisionRepository interface {
	Save(ctx context.Context, d model.Decision) error
	AttachPlan(ctx context.Context, decisionID, planID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Decision, error)
	FindByUserID(ctx context.Context, userID string, limit int) ([]model.Decision, error)
}

// PlanRepository persists repayment plans together with their installments.
type PlanRepository interface {
	Save(ctx context.Context, p model.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Plan, error)
	FindByUserID(ctx context.Context, userID string) ([]model.Plan, error)
}

// WebhookRepository tracks outbound ledger notifications.
type WebhookRepository interface {
	Save(ctx context.Context, w model.OutboundWebhook) error
	Update(ctx context.Context, w model.OutboundWebhook) error
}

// BankClient fetches a user's transaction history from the bank service.
type BankClient interface {
	GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
}

// LedgerNotifier delivers decision outcomes to the ledger service. Both
// methods are best effort; callers must not treat a failure as fatal.
type LedgerNotifier interface {
	NotifyDecisionMade(ctx context.Context, d model.Decision) error
	NotifyPlanCreated(ctx context.Context, p model.Plan) error
}

// EventPublisher emits domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, e event.DomainEvent) error
}
