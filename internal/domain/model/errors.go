package model

import "errors"

// Sentinel kinds for engine errors. Callers classify with errors.Is; every
// failure surfaced by the engine wraps exactly one of these.
var (
	ErrValidation          = errors.New("validation failed")
	ErrAuthorization       = errors.New("actor not authorized")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateSubmission = errors.New("talent already submitted")
	ErrInvalidState        = errors.New("operation not allowed in current phase")
	ErrConflict            = errors.New("conflicting state")
)

// ErrKind returns a short label for the sentinel err wraps. Used for metrics
// and error responses.
func ErrKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAuthorization):
		return "authorization"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateSubmission):
		return "duplicate_submission"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
