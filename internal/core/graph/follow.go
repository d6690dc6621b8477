package graph

import "time"

// FollowEdge represents a directed follow relationship: follower reads
// followee's posts. At most one edge exists per ordered pair.
type FollowEdge struct {
	ID         int64     `json:"id"`
	FollowerID int64     `json:"user_id"`
	FolloweeID int64     `json:"target_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
