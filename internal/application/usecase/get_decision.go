package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/application/dto"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

// GetDecisionUseCase looks up a single decision by id.
type GetDecisionUseCase struct {
	decisions port.DecisionRepository
}

func NewGetDecisionUseCase(decisions port.DecisionRepository) *GetDecisionUseCase {
	return &GetDecisionUseCase{decisions: decisions}
}

func (uc *GetDecisionUseCase) Execute(ctx context.Context, id uuid.UUID) (dto.DecisionResponse, error) {
	decision, err := uc.decisions.FindByID(ctx, id)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("finding decision %s: %w", id, err)
	}
	return dto.FromDecision(decision), nil
}
