package identity

import "context"

// Resolver resolves an opaque bearer credential to a stable numeric user ID.
// Implementations must return ErrUnauthenticated for bad credentials and
// ErrAuthorityUnavailable when the identity authority cannot be reached, so
// callers can distinguish a 401 from a retryable 503.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (int64, error)
}
