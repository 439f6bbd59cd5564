package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/service"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

func approvedDecision(grantedCents int64) model.Decision {
	planID := uuid.New()
	return model.Decision{
		ID:               uuid.New(),
		UserID:           "user-1",
		Approved:         true,
		CreditLimitCents: 50_000,
		RequestedCents:   grantedCents,
		GrantedCents:     grantedCents,
		PlanID:           &planID,
	}
}

func TestBuildPlan(t *testing.T) {
	evaluated := time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)

	t.Run("remainder lands entirely on the first installment", func(t *testing.T) {
		plan, err := service.BuildPlan(approvedDecision(10_003), evaluated)
		require.NoError(t, err)

		require.Len(t, plan.Installments, 4)
		assert.Equal(t, int64(2_503), plan.Installments[0].AmountCents)
		assert.Equal(t, int64(2_500), plan.Installments[1].AmountCents)
		assert.Equal(t, int64(2_500), plan.Installments[2].AmountCents)
		assert.Equal(t, int64(2_500), plan.Installments[3].AmountCents)
		assert.Equal(t, plan.TotalCents, plan.InstallmentSum())
	})

	t.Run("due dates are biweekly from the evaluation date", func(t *testing.T) {
		plan, err := service.BuildPlan(approvedDecision(10_000), evaluated)
		require.NoError(t, err)

		want := []time.Time{
			time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 26, 0, 0, 0, 0, time.UTC),
		}
		for i, inst := range plan.Installments {
			assert.True(t, inst.DueDate.Equal(want[i]), "installment %d: got %s", i, inst.DueDate)
			assert.Equal(t, valueobject.InstallmentScheduled, inst.Status)
		}
	})

	t.Run("plan carries the identifiers from the decision", func(t *testing.T) {
		decision := approvedDecision(10_000)
		plan, err := service.BuildPlan(decision, evaluated)
		require.NoError(t, err)

		assert.Equal(t, *decision.PlanID, plan.ID)
		assert.Equal(t, decision.ID, plan.DecisionID)
		assert.Equal(t, decision.UserID, plan.UserID)
		for _, inst := range plan.Installments {
			assert.Equal(t, plan.ID, inst.PlanID)
		}
	})

	t.Run("installments always sum to the granted amount", func(t *testing.T) {
		for _, cents := range []int64{1, 2, 3, 4, 5, 99, 10_000, 10_001, 10_002, 10_003, 59_999} {
			plan, err := service.BuildPlan(approvedDecision(cents), evaluated)
			require.NoError(t, err)
			assert.Equal(t, cents, plan.InstallmentSum(), "granted=%d", cents)
		}
	})

	t.Run("declined decision is rejected", func(t *testing.T) {
		decision := approvedDecision(10_000)
		decision.Approved = false
		decision.PlanID = nil

		_, err := service.BuildPlan(decision, evaluated)
		assert.ErrorIs(t, err, service.ErrNotApproved)
	})
}
