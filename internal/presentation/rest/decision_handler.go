package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/geraldpay/bnpl-engine/internal/application/dto"
	"github.com/geraldpay/bnpl-engine/internal/application/usecase"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

// DecisionHandler serves the decision endpoints.
type DecisionHandler struct {
	request *usecase.RequestDecisionUseCase
	get     *usecase.GetDecisionUseCase
	history *usecase.GetDecisionHistoryUseCase
	logger  *slog.Logger
}

func NewDecisionHandler(
	request *usecase.RequestDecisionUseCase,
	get *usecase.GetDecisionUseCase,
	history *usecase.GetDecisionHistoryUseCase,
	logger *slog.Logger,
) *DecisionHandler {
	return &DecisionHandler{request: request, get: get, history: history, logger: logger}
}

// RegisterRoutes attaches the decision routes to the given mux.
func (h *DecisionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/decision", h.requestDecision)
	mux.HandleFunc("GET /v1/decision/history", h.decisionHistory)
	mux.HandleFunc("GET /v1/decision/{id}", h.getDecision)
}

func (h *DecisionHandler) requestDecision(w http.ResponseWriter, r *http.Request) {
	var req dto.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed JSON body", port.ErrInvalidRequest))
		return
	}

	resp, err := h.request.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("decision request failed", "user_id", req.UserID, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *DecisionHandler) getDecision(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid decision id", port.ErrInvalidRequest))
		return
	}

	resp, err := h.get.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DecisionHandler) decisionHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: limit must be an integer", port.ErrInvalidRequest))
			return
		}
		limit = n
	}

	resp, err := h.history.Execute(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
