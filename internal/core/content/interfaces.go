package content

import "context"

// Fetcher retrieves posts from the post service
type Fetcher interface {
	// FetchForUsers returns posts authored by any of the given users.
	// An empty id set returns an empty slice without a remote call.
	FetchForUsers(ctx context.Context, userIDs []int64) ([]Post, error)

	// FetchForUser returns all posts of a single user (profile views)
	FetchForUser(ctx context.Context, userID int64) ([]Post, error)
}
