package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain errors onto HTTP statuses: invalid input is 400,
// missing resources are 404, and upstream bank failures are 503.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, port.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, port.ErrUserNotFound),
		errors.Is(err, port.ErrDecisionNotFound),
		errors.Is(err, port.ErrPlanNotFound):
		status = http.StatusNotFound
	case errors.Is(err, port.ErrBankTimeout),
		errors.Is(err, port.ErrBankUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
