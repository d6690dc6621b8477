package graph

import "context"

// Repository defines the interface for follow-edge persistence.
// Edges are durable: they must survive process restart.
type Repository interface {
	// CreateEdge inserts a follow edge. Returns ErrAlreadyFollowing when the
	// ordered pair already exists; the at-most-one-edge invariant is enforced
	// by the store, not the caller.
	CreateEdge(ctx context.Context, followerID, followeeID int64) (*FollowEdge, error)

	// DeleteEdge removes a follow edge. Returns ErrNotFollowing when absent.
	DeleteEdge(ctx context.Context, followerID, followeeID int64) error

	// ListFollowees returns the IDs of users that userID follows
	ListFollowees(ctx context.Context, userID int64) ([]int64, error)

	// ListFollowers returns the IDs of users following userID
	ListFollowers(ctx context.Context, userID int64) ([]int64, error)

	// ListEdges returns the full subscription records for userID
	ListEdges(ctx context.Context, followerID int64) ([]*FollowEdge, error)
}

// Service defines the follow-graph business logic
type Service interface {
	Subscribe(ctx context.Context, followerID, followeeID int64) (*FollowEdge, error)
	Unsubscribe(ctx context.Context, followerID, followeeID int64) error
	ListFollowees(ctx context.Context, userID int64) ([]int64, error)
	ListFollowers(ctx context.Context, userID int64) ([]int64, error)
	ListSubscriptions(ctx context.Context, userID int64) ([]*FollowEdge, error)
}
