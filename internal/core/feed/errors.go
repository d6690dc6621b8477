package feed

import "errors"

// Domain errors for feed assembly
var (
	// ErrFeedUnavailable is returned when a cold feed cannot be assembled
	// because an upstream dependency failed. Cache hits never fail.
	ErrFeedUnavailable = errors.New("feed unavailable")
)
