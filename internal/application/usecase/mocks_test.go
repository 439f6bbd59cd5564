package usecase_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/domain/event"
	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

type mockDecisionRepository struct {
	mu             sync.Mutex
	saveFunc       func(ctx context.Context, d model.Decision) error
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (model.Decision, error)
	findByUserFunc func(ctx context.Context, userID string, limit int) ([]model.Decision, error)
	saved          []model.Decision
	attachedPlans  map[uuid.UUID]uuid.UUID
}

func (m *mockDecisionRepository) Save(ctx context.Context, d model.Decision) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, d)
	return nil
}

func (m *mockDecisionRepository) AttachPlan(_ context.Context, decisionID, planID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attachedPlans == nil {
		m.attachedPlans = make(map[uuid.UUID]uuid.UUID)
	}
	m.attachedPlans[decisionID] = planID
	return nil
}

func (m *mockDecisionRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Decision, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Decision{}, port.ErrDecisionNotFound
}

func (m *mockDecisionRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]model.Decision, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, limit)
	}
	return nil, nil
}

type mockPlanRepository struct {
	mu             sync.Mutex
	saveFunc       func(ctx context.Context, p model.Plan) error
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (model.Plan, error)
	findByUserFunc func(ctx context.Context, userID string) ([]model.Plan, error)
	saved          []model.Plan
}

func (m *mockPlanRepository) Save(ctx context.Context, p model.Plan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, p)
	return nil
}

func (m *mockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Plan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Plan{}, port.ErrPlanNotFound
}

func (m *mockPlanRepository) FindByUserID(ctx context.Context, userID string) ([]model.Plan, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID)
	}
	return nil, nil
}

type mockBankClient struct {
	getTransactionsFunc func(ctx context.Context, userID string) ([]model.Transaction, error)
}

func (m *mockBankClient) GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if m.getTransactionsFunc != nil {
		return m.getTransactionsFunc(ctx, userID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	mu          sync.Mutex
	publishFunc func(ctx context.Context, e event.DomainEvent) error
	published   []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, e event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, e)
	return nil
}

func (m *mockEventPublisher) events() []event.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]event.DomainEvent(nil), m.published...)
}

// mockLedgerNotifier signals on done for every notification so tests can
// wait for the detached goroutines.
type mockLedgerNotifier struct {
	mu        sync.Mutex
	decisions []model.Decision
	plans     []model.Plan
	done      chan string
}

func newMockLedgerNotifier() *mockLedgerNotifier {
	return &mockLedgerNotifier{done: make(chan string, 4)}
}

func (m *mockLedgerNotifier) NotifyDecisionMade(_ context.Context, d model.Decision) error {
	m.mu.Lock()
	m.decisions = append(m.decisions, d)
	m.mu.Unlock()
	m.done <- "decision"
	return nil
}

func (m *mockLedgerNotifier) NotifyPlanCreated(_ context.Context, p model.Plan) error {
	m.mu.Lock()
	m.plans = append(m.plans, p)
	m.mu.Unlock()
	m.done <- "plan"
	return nil
}
