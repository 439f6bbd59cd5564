package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/geraldpay/bnpl-engine/internal/application/dto"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// GetDecisionHistoryUseCase lists a user's past decisions, newest first.
type GetDecisionHistoryUseCase struct {
	decisions port.DecisionRepository
}

func NewGetDecisionHistoryUseCase(decisions port.DecisionRepository) *GetDecisionHistoryUseCase {
	return &GetDecisionHistoryUseCase{decisions: decisions}
}

// Execute returns up to limit decisions. A non-positive limit falls back
// to the default; anything above the maximum is clamped.
func (uc *GetDecisionHistoryUseCase) Execute(ctx context.Context, userID string, limit int) (dto.DecisionHistoryResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return dto.DecisionHistoryResponse{}, fmt.Errorf("%w: user_id is required", port.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	decisions, err := uc.decisions.FindByUserID(ctx, userID, limit)
	if err != nil {
		return dto.DecisionHistoryResponse{}, fmt.Errorf("listing decisions for user %s: %w", userID, err)
	}

	resp := dto.DecisionHistoryResponse{
		UserID:    userID,
		Decisions: make([]dto.DecisionResponse, 0, len(decisions)),
	}
	for _, d := range decisions {
		resp.Decisions = append(resp.Decisions, dto.FromDecision(d))
	}
	return resp, nil
}
