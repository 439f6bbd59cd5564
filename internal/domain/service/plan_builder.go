package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

const (
	// numInstallments is the fixed pay-in-4 installment count.
	numInstallments = 4
	// installmentIntervalDays is the biweekly due-date spacing; the first
	// installment is due this many days after evaluation.
	installmentIntervalDays = 14
)

// ErrNotApproved is returned when a plan is requested for a declined decision.
var ErrNotApproved = errors.New("cannot build a plan for a declined decision")

// BuildPlan splits the granted amount of an approved decision into four
// biweekly installments.
//
// The amount is divided by integer division and the whole remainder lands on
// the first installment, so the installments always sum exactly to the
// granted amount. Due dates start 14 days after the evaluation date and
// advance by 14 days each. All installments start as scheduled.
func BuildPlan(decision model.Decision, evaluationDate time.Time) (model.Plan, error) {
	if !decision.Approved || decision.PlanID == nil {
		return model.Plan{}, ErrNotApproved
	}
	if decision.GrantedCents <= 0 {
		return model.Plan{}, errors.New("granted amount must be positive")
	}

	now := evaluationDate.UTC()
	plan := model.Plan{
		ID:         *decision.PlanID,
		UserID:     decision.UserID,
		DecisionID: decision.ID,
		TotalCents: decision.GrantedCents,
		CreatedAt:  now,
	}

	base := decision.GrantedCents / numInstallments
	remainder := decision.GrantedCents % numInstallments

	for i := 0; i < numInstallments; i++ {
		amount := base
		if i == 0 {
			amount += remainder
		}

		plan.Installments = append(plan.Installments, model.Installment{
			ID:          uuid.New(),
			PlanID:      plan.ID,
			DueDate:     startOfDay(now).AddDate(0, 0, installmentIntervalDays*(i+1)),
			AmountCents: amount,
			Status:      valueobject.InstallmentScheduled,
			CreatedAt:   now,
		})
	}

	return plan, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
