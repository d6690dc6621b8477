package identity

import "errors"

// Domain errors for identity resolution
var (
	// ErrUnauthenticated is returned when the credential is malformed,
	// expired, or fails verification
	ErrUnauthenticated = errors.New("invalid or expired credential")

	// ErrAuthorityUnavailable is returned when the upstream identity
	// authority cannot be reached; callers should surface a retryable status
	ErrAuthorityUnavailable = errors.New("identity authority unavailable")
)
