package graph

import "errors"

// Domain errors for follow-graph mutations
var (
	// ErrSelfFollow is returned when a user tries to follow themselves
	ErrSelfFollow = errors.New("cannot subscribe to yourself")

	// ErrAlreadyFollowing is returned when the follow edge already exists
	ErrAlreadyFollowing = errors.New("already subscribed")

	// ErrNotFollowing is returned when unsubscribing without an existing edge
	ErrNotFollowing = errors.New("subscription not found")

	// ErrStoreUnavailable is returned when the backing store cannot be
	// reached; callers on the notification path must retry, not drop
	ErrStoreUnavailable = errors.New("follow graph store unavailable")
)

// IsConflict checks if error is a conflict error (duplicate edge)
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyFollowing)
}

// IsNotFound checks if error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFollowing)
}
