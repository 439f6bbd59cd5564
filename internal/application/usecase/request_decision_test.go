package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geraldpay/bnpl-engine/internal/application/dto"
	"github.com/geraldpay/bnpl-engine/internal/application/usecase"
	"github.com/geraldpay/bnpl-engine/internal/domain/event"
	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
	"github.com/geraldpay/bnpl-engine/internal/domain/service"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// healthyTransactions spans 30 days with regular weekly income and modest
// spending, enough to clear the approval threshold comfortably.
func healthyTransactions() []model.Transaction {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var txns []model.Transaction
	balance := int64(0)
	for i := 0; i < 30; i++ {
		txn := model.Transaction{Date: base.AddDate(0, 0, i)}
		if i%7 == 0 {
			balance += 70_000
			txn.AmountCents = 70_000
			txn.Type = valueobject.TransactionCredit
		} else {
			balance -= 6_000
			txn.AmountCents = 6_000
			txn.Type = valueobject.TransactionDebit
		}
		txn.BalanceCents = balance
		txns = append(txns, txn)
	}
	return txns
}

type requestDecisionFixture struct {
	uc        *usecase.RequestDecisionUseCase
	decisions *mockDecisionRepository
	plans     *mockPlanRepository
	publisher *mockEventPublisher
	notifier  *mockLedgerNotifier
}

func newRequestDecisionFixture(bank *mockBankClient) requestDecisionFixture {
	f := requestDecisionFixture{
		decisions: &mockDecisionRepository{},
		plans:     &mockPlanRepository{},
		publisher: &mockEventPublisher{},
		notifier:  newMockLedgerNotifier(),
	}
	f.uc = usecase.NewRequestDecisionUseCase(
		service.NewDecisionEngine(service.DefaultScoringConfig()),
		bank, f.decisions, f.plans, f.publisher, f.notifier, discardLogger(),
	)
	return f
}

func waitForNotifications(t *testing.T, notifier *mockLedgerNotifier, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-notifier.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notification %d of %d", i+1, n)
		}
	}
}

func TestRequestDecision_Execute(t *testing.T) {
	t.Run("approves a healthy user and builds a plan", func(t *testing.T) {
		bank := &mockBankClient{
			getTransactionsFunc: func(_ context.Context, _ string) ([]model.Transaction, error) {
				return healthyTransactions(), nil
			},
		}
		f := newRequestDecisionFixture(bank)

		resp, err := f.uc.Execute(context.Background(), dto.DecisionRequest{
			UserID:               "user-1",
			RequestedAmountCents: 20_000,
		})
		require.NoError(t, err)

		assert.True(t, resp.Approved)
		assert.Equal(t, int64(20_000), resp.AmountGrantedCents)
		require.NotNil(t, resp.Plan)
		assert.Len(t, resp.Plan.Installments, 4)
		assert.Equal(t, int64(20_000), resp.Plan.TotalCents)

		require.Len(t, f.decisions.saved, 1)
		require.Len(t, f.plans.saved, 1)
		assert.Equal(t, f.plans.saved[0].ID, f.decisions.attachedPlans[f.decisions.saved[0].ID])

		events := f.publisher.events()
		require.Len(t, events, 2)
		assert.Equal(t, "bnpl.decision.made", events[0].EventType())
		assert.Equal(t, "bnpl.plan.created", events[1].EventType())

		waitForNotifications(t, f.notifier, 2)
	})

	t.Run("declines without building a plan", func(t *testing.T) {
		// A thin file with an NSF event is always declined.
		bank := &mockBankClient{
			getTransactionsFunc: func(_ context.Context, _ string) ([]model.Transaction, error) {
				return []model.Transaction{
					{Date: time.Now(), AmountCents: 10_000, BalanceCents: 10_000, Type: valueobject.TransactionCredit},
					{Date: time.Now(), AmountCents: 15_000, BalanceCents: -5_000, Type: valueobject.TransactionDebit, NSF: true},
				}, nil
			},
		}
		f := newRequestDecisionFixture(bank)

		resp, err := f.uc.Execute(context.Background(), dto.DecisionRequest{
			UserID:               "user-2",
			RequestedAmountCents: 20_000,
		})
		require.NoError(t, err)

		assert.False(t, resp.Approved)
		assert.Nil(t, resp.Plan)
		assert.Nil(t, resp.PlanID)
		require.Len(t, f.decisions.saved, 1)
		assert.Empty(t, f.plans.saved)

		events := f.publisher.events()
		require.Len(t, events, 1)
		assert.Equal(t, "bnpl.decision.made", events[0].EventType())

		waitForNotifications(t, f.notifier, 1)
	})

	t.Run("bank failure aborts instead of treating history as empty", func(t *testing.T) {
		bank := &mockBankClient{
			getTransactionsFunc: func(_ context.Context, _ string) ([]model.Transaction, error) {
				return nil, port.ErrBankTimeout
			},
		}
		f := newRequestDecisionFixture(bank)

		_, err := f.uc.Execute(context.Background(), dto.DecisionRequest{
			UserID:               "user-3",
			RequestedAmountCents: 20_000,
		})
		require.ErrorIs(t, err, port.ErrBankTimeout)
		assert.Empty(t, f.decisions.saved, "no decision is recorded on fetch failure")
	})

	t.Run("unknown user propagates not found", func(t *testing.T) {
		bank := &mockBankClient{
			getTransactionsFunc: func(_ context.Context, _ string) ([]model.Transaction, error) {
				return nil, port.ErrUserNotFound
			},
		}
		f := newRequestDecisionFixture(bank)

		_, err := f.uc.Execute(context.Background(), dto.DecisionRequest{
			UserID:               "ghost",
			RequestedAmountCents: 20_000,
		})
		assert.ErrorIs(t, err, port.ErrUserNotFound)
	})

	t.Run("empty history declines rather than failing", func(t *testing.T) {
		f := newRequestDecisionFixture(&mockBankClient{})

		resp, err := f.uc.Execute(context.Background(), dto.DecisionRequest{
			UserID:               "user-4",
			RequestedAmountCents: 20_000,
		})
		require.NoError(t, err)
		assert.False(t, resp.Approved)
		waitForNotifications(t, f.notifier, 1)
	})

	t.Run("invalid requests never reach the bank", func(t *testing.T) {
		bankCalled := false
		bank := &mockBankClient{
			getTransactionsFunc: func(_ context.Context, _ string) ([]model.Transaction, error) {
				bankCalled = true
				return nil, nil
			},
		}
		f := newRequestDecisionFixture(bank)

		for _, req := range []dto.DecisionRequest{
			{UserID: "", RequestedAmountCents: 20_000},
			{UserID: "user-5", RequestedAmountCents: 0},
			{UserID: "user-5", RequestedAmountCents: -100},
			{UserID: "user-5", RequestedAmountCents: 2_000_000},
		} {
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, port.ErrInvalidRequest)
		}
		assert.False(t, bankCalled)
	})

	t.Run("publish failure does not fail the decision", func(t *testing.T) {
		bank := &mockBankClient{
			getTransactionsFunc: func(_ context.Context, _ string) ([]model.Transaction, error) {
				return healthyTransactions(), nil
			},
		}
		f := newRequestDecisionFixture(bank)
		f.publisher.publishFunc = func(_ context.Context, _ event.DomainEvent) error {
			return assert.AnError
		}

		resp, err := f.uc.Execute(context.Background(), dto.DecisionRequest{
			UserID:               "user-6",
			RequestedAmountCents: 20_000,
		})
		require.NoError(t, err)
		assert.True(t, resp.Approved)
	})
}
