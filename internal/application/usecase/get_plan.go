package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/application/dto"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

// GetPlanUseCase looks up a single repayment plan by id.
type GetPlanUseCase struct {
	plans port.PlanRepository
}

func NewGetPlanUseCase(plans port.PlanRepository) *GetPlanUseCase {
	return &GetPlanUseCase{plans: plans}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, id uuid.UUID) (dto.PlanResponse, error) {
	plan, err := uc.plans.FindByID(ctx, id)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("finding plan %s: %w", id, err)
	}
	return dto.FromPlan(plan), nil
}
