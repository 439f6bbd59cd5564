package rest

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/application/usecase"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

// PlanHandler serves the repayment plan endpoints.
type PlanHandler struct {
	get       *usecase.GetPlanUseCase
	userPlans *usecase.GetUserPlansUseCase
}

func NewPlanHandler(get *usecase.GetPlanUseCase, userPlans *usecase.GetUserPlansUseCase) *PlanHandler {
	return &PlanHandler{get: get, userPlans: userPlans}
}

// RegisterRoutes attaches the plan routes to the given mux.
func (h *PlanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/plan/{id}", h.getPlan)
	mux.HandleFunc("GET /v1/plans", h.getUserPlans)
}

func (h *PlanHandler) getPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid plan id", port.ErrInvalidRequest))
		return
	}

	resp, err := h.get.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PlanHandler) getUserPlans(w http.ResponseWriter, r *http.Request) {
	resp, err := h.userPlans.Execute(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
