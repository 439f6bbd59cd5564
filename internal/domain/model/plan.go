package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

// Installment is one scheduled repayment within a plan.
type Installment struct {
	ID          uuid.UUID
	PlanID      uuid.UUID
	DueDate     time.Time
	AmountCents int64
	Status      valueobject.InstallmentStatus
	CreatedAt   time.Time
}

// Plan is a repayment schedule for an approved decision. The installment
// amounts always sum exactly to TotalCents.
type Plan struct {
	ID           uuid.UUID
	UserID       string
	DecisionID   uuid.UUID
	TotalCents   int64
	Installments []Installment
	CreatedAt    time.Time
}

// InstallmentSum returns the sum of all installment amounts in cents.
func (p Plan) InstallmentSum() int64 {
	var sum int64
	for _, inst := range p.Installments {
		sum += inst.AmountCents
	}
	return sum
}
