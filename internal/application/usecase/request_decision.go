package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/application/dto"
	"github.com/geraldpay/bnpl-engine/internal/domain/event"
	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
	"github.com/geraldpay/bnpl-engine/internal/domain/service"
	"github.com/geraldpay/bnpl-engine/internal/infrastructure/metrics"
)

// notifyTimeout bounds the detached ledger notification calls.
const notifyTimeout = 30 * time.Second

// RequestDecisionUseCase runs the full decision flow: fetch history,
// score, persist, and fan out events and notifications.
type RequestDecisionUseCase struct {
	engine    *service.DecisionEngine
	bank      port.BankClient
	decisions port.DecisionRepository
	plans     port.PlanRepository
	publisher port.EventPublisher
	notifier  port.LedgerNotifier
	logger    *slog.Logger
}

func NewRequestDecisionUseCase(
	engine *service.DecisionEngine,
	bank port.BankClient,
	decisions port.DecisionRepository,
	plans port.PlanRepository,
	publisher port.EventPublisher,
	notifier port.LedgerNotifier,
	logger *slog.Logger,
) *RequestDecisionUseCase {
	return &RequestDecisionUseCase{
		engine:    engine,
		bank:      bank,
		decisions: decisions,
		plans:     plans,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}
}

// Execute evaluates one decision request. A bank fetch failure aborts the
// flow; it is never treated as an empty history.
func (uc *RequestDecisionUseCase) Execute(ctx context.Context, req dto.DecisionRequest) (dto.DecisionResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return dto.DecisionResponse{}, err
	}

	txns, err := uc.bank.GetTransactions(ctx, req.UserID)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("fetching transactions for user %s: %w", req.UserID, err)
	}

	now := time.Now().UTC()
	decision := uc.engine.Decide(req.UserID, req.RequestedAmountCents, txns, now)

	if uc.logger.Enabled(ctx, slog.LevelDebug) {
		uc.logger.Debug("decision explanation",
			"decision_id", decision.ID,
			"explanation", uc.engine.Explain(decision, txns),
		)
	}

	if err := uc.decisions.Save(ctx, decision); err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("saving decision %s: %w", decision.ID, err)
	}

	resp := dto.FromDecision(decision)

	var plan model.Plan
	if decision.Approved {
		plan, err = service.BuildPlan(decision, now)
		if err != nil {
			return dto.DecisionResponse{}, fmt.Errorf("building plan for decision %s: %w", decision.ID, err)
		}
		if err := uc.plans.Save(ctx, plan); err != nil {
			return dto.DecisionResponse{}, fmt.Errorf("saving plan %s: %w", plan.ID, err)
		}
		if err := uc.decisions.AttachPlan(ctx, decision.ID, plan.ID); err != nil {
			return dto.DecisionResponse{}, fmt.Errorf("attaching plan %s to decision %s: %w", plan.ID, decision.ID, err)
		}
		planResp := dto.FromPlan(plan)
		resp.Plan = &planResp
	}

	uc.publishEvents(ctx, decision, plan, now)
	uc.notifyLedger(decision, plan)

	metrics.DecisionsTotal.WithLabelValues(metrics.Outcome(decision.Approved)).Inc()
	metrics.CreditLimitBucket.WithLabelValues(
		service.LimitBucket(decision.CreditLimitCents),
		metrics.Outcome(decision.Approved),
	).Inc()
	metrics.DecisionLatency.Observe(time.Since(start).Seconds())

	uc.logger.Info("decision made",
		"decision_id", decision.ID,
		"user_id", decision.UserID,
		"approved", decision.Approved,
		"risk_score", decision.Factors.RiskScore,
		"credit_limit_cents", decision.CreditLimitCents,
	)

	return resp, nil
}

// publishEvents emits domain events to the broker. Publish failures are
// logged and swallowed; the decision already stands.
func (uc *RequestDecisionUseCase) publishEvents(ctx context.Context, d model.Decision, p model.Plan, now time.Time) {
	if err := uc.publisher.Publish(ctx, event.NewDecisionMade(d, now)); err != nil {
		uc.logger.Error("publishing decision event", "decision_id", d.ID, "error", err)
	}
	if !d.Approved {
		return
	}
	if err := uc.publisher.Publish(ctx, event.NewPlanCreated(p, now)); err != nil {
		uc.logger.Error("publishing plan event", "plan_id", p.ID, "error", err)
	}
}

// notifyLedger fires the ledger webhooks on detached goroutines so the
// caller never waits on, or fails because of, the ledger service.
func (uc *RequestDecisionUseCase) notifyLedger(d model.Decision, p model.Plan) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := uc.notifier.NotifyDecisionMade(ctx, d); err != nil {
			uc.logger.Warn("ledger decision notification failed", "decision_id", d.ID, "error", err)
		}
	}()

	if !d.Approved {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := uc.notifier.NotifyPlanCreated(ctx, p); err != nil {
			uc.logger.Warn("ledger plan notification failed", "plan_id", p.ID, "error", err)
		}
	}()
}
