package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"Chatty/internal/core/graph"
)

type postgresGraphRepo struct {
	db *sql.DB
}

// NewGraphRepository creates a Postgres-backed follow-graph repository
func NewGraphRepository(db *sql.DB) graph.Repository {
	return &postgresGraphRepo{db: db}
}

// CreateEdge inserts a follow edge. The unique index on
// (follower_id, followee_id) upholds the at-most-one-edge invariant under
// concurrent subscribe attempts.
func (r *postgresGraphRepo) CreateEdge(ctx context.Context, followerID, followeeID int64) (*graph.FollowEdge, error) {
	edge := &graph.FollowEdge{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now().UTC(),
	}

	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		edge.FollowerID,
		edge.FolloweeID,
		edge.CreatedAt,
	).Scan(&edge.ID, &edge.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return nil, graph.ErrAlreadyFollowing
			case "check_violation":
				return nil, graph.ErrSelfFollow
			}
		}
		return nil, fmt.Errorf("failed to create follow edge: %w", err)
	}

	return edge, nil
}

// DeleteEdge removes a follow edge
func (r *postgresGraphRepo) DeleteEdge(ctx context.Context, followerID, followeeID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}

	if rowsAffected == 0 {
		return graph.ErrNotFollowing
	}

	return nil
}

// ListFollowees returns the IDs of users that userID follows
func (r *postgresGraphRepo) ListFollowees(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT followee_id FROM follows WHERE follower_id = $1`
	return r.listIDs(ctx, query, userID)
}

// ListFollowers returns the IDs of users following userID
func (r *postgresGraphRepo) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT follower_id FROM follows WHERE followee_id = $1`
	return r.listIDs(ctx, query, userID)
}

// ListEdges returns the full subscription records for followerID
func (r *postgresGraphRepo) ListEdges(ctx context.Context, followerID int64) ([]*graph.FollowEdge, error) {
	query := `
		SELECT id, follower_id, followee_id, created_at
		FROM follows
		WHERE follower_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, followerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var edges []*graph.FollowEdge
	for rows.Next() {
		edge := &graph.FollowEdge{}
		if err := rows.Scan(&edge.ID, &edge.FollowerID, &edge.FolloweeID, &edge.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan follow edge: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}

	return edges, nil
}

func (r *postgresGraphRepo) listIDs(ctx context.Context, query string, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graph.ErrStoreUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", graph.ErrStoreUnavailable, err)
	}

	return ids, nil
}
