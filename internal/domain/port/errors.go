package port

import "errors"

var (
	// ErrUserNotFound means the bank has no account for the user.
	ErrUserNotFound = errors.New("user not found")

	// ErrBankTimeout means the bank did not answer within the deadline,
	// after retries were exhausted.
	ErrBankTimeout = errors.New("bank request timed out")

	// ErrBankUnavailable covers transport and HTTP-level failures other
	// than a missing user.
	ErrBankUnavailable = errors.New("bank unavailable")

	// ErrDecisionNotFound means no decision exists for the given id.
	ErrDecisionNotFound = errors.New("decision not found")

	// ErrPlanNotFound means no plan exists for the given id.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrInvalidRequest flags a malformed or out-of-range request.
	ErrInvalidRequest = errors.New("invalid request")
)
