package dto

import (
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
)

// InstallmentResponse is one scheduled repayment on the wire.
type InstallmentResponse struct {
	InstallmentID string `json:"installment_id"`
	DueDate       string `json:"due_date"`
	AmountCents   int64  `json:"amount_cents"`
	Status        string `json:"status"`
}

// PlanResponse is a repayment plan on the wire.
type PlanResponse struct {
	PlanID       string                `json:"plan_id"`
	UserID       string                `json:"user_id"`
	DecisionID   string                `json:"decision_id"`
	TotalCents   int64                 `json:"total_cents"`
	Installments []InstallmentResponse `json:"installments"`
	CreatedAt    string                `json:"created_at"`
}

// PlanListResponse lists a user's repayment plans.
type PlanListResponse struct {
	UserID string         `json:"user_id"`
	Plans  []PlanResponse `json:"plans"`
}

// FromPlan maps a domain plan onto the wire shape.
func FromPlan(p model.Plan) PlanResponse {
	insts := make([]InstallmentResponse, 0, len(p.Installments))
	for _, inst := range p.Installments {
		insts = append(insts, InstallmentResponse{
			InstallmentID: inst.ID.String(),
			DueDate:       inst.DueDate.Format("2006-01-02"),
			AmountCents:   inst.AmountCents,
			Status:        string(inst.Status),
		})
	}
	return PlanResponse{
		PlanID:       p.ID.String(),
		UserID:       p.UserID,
		DecisionID:   p.DecisionID.String(),
		TotalCents:   p.TotalCents,
		Installments: insts,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
