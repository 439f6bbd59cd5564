package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/geraldpay/bnpl-engine/internal/application/dto"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

// GetUserPlansUseCase lists all repayment plans belonging to one user.
type GetUserPlansUseCase struct {
	plans port.PlanRepository
}

func NewGetUserPlansUseCase(plans port.PlanRepository) *GetUserPlansUseCase {
	return &GetUserPlansUseCase{plans: plans}
}

func (uc *GetUserPlansUseCase) Execute(ctx context.Context, userID string) (dto.PlanListResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return dto.PlanListResponse{}, fmt.Errorf("%w: user_id is required", port.ErrInvalidRequest)
	}

	plans, err := uc.plans.FindByUserID(ctx, userID)
	if err != nil {
		return dto.PlanListResponse{}, fmt.Errorf("listing plans for user %s: %w", userID, err)
	}

	resp := dto.PlanListResponse{
		UserID: userID,
		Plans:  make([]dto.PlanResponse, 0, len(plans)),
	}
	for _, p := range plans {
		resp.Plans = append(resp.Plans, dto.FromPlan(p))
	}
	return resp, nil
}
