package common

import "errors"

// Domain error taxonomy. Handlers map these to HTTP statuses; services return them
// wrapped with fmt.Errorf("...: %w", ...) so errors.Is keeps working.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSeatLimitExceeded = errors.New("seat limit exceeded")
	ErrValidation        = errors.New("validation failed")
	ErrInternal          = errors.New("internal error")
)
