package feed

import (
	"context"

	"Chatty/internal/core/content"
)

// FollowGraph is the slice of the follow-graph store the assembler needs
type FollowGraph interface {
	ListFollowees(ctx context.Context, userID int64) ([]int64, error)
	ListFollowers(ctx context.Context, userID int64) ([]int64, error)
}

// Service defines feed assembly and fan-out invalidation
type Service interface {
	// GetFeed returns the user's feed, most recent post first, serving from
	// cache when possible
	GetFeed(ctx context.Context, userID int64) ([]content.Post, error)

	// HandlePostCreated invalidates the cached feeds of everyone following
	// the author. An error means the notification must be retried.
	HandlePostCreated(ctx context.Context, authorID int64) error
}
