package content

import "errors"

// Domain errors for content fetching
var (
	// ErrServiceUnavailable is returned on transport failure, timeout, or a
	// non-success response from the post service. Callers must treat it as
	// retryable, never as an empty feed.
	ErrServiceUnavailable = errors.New("post service unavailable")

	// ErrCircuitOpen is returned when the circuit breaker is rejecting calls
	// after repeated upstream failures
	ErrCircuitOpen = errors.New("post service circuit open")
)
