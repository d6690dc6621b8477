package graph

import (
	"context"
	"fmt"
	"log/slog"

	"Chatty/internal/core/audit"
)

type graphService struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewGraphService creates a follow-graph service. recorder may be nil when
// no audit overlay is deployed.
func NewGraphService(repo Repository, recorder audit.Recorder, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &graphService{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

// Subscribe creates a follow edge from follower to followee
func (s *graphService) Subscribe(ctx context.Context, followerID, followeeID int64) (*FollowEdge, error) {
	if followerID == followeeID {
		return nil, ErrSelfFollow
	}

	edge, err := s.repo.CreateEdge(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, followerID, audit.ActionSubscribe, followeeID)

	return edge, nil
}

// Unsubscribe removes the follow edge from follower to followee
func (s *graphService) Unsubscribe(ctx context.Context, followerID, followeeID int64) error {
	if err := s.repo.DeleteEdge(ctx, followerID, followeeID); err != nil {
		return err
	}

	s.record(ctx, followerID, audit.ActionUnsubscribe, followeeID)

	return nil
}

// ListFollowees returns the IDs of users that userID follows
func (s *graphService) ListFollowees(ctx context.Context, userID int64) ([]int64, error) {
	followees, err := s.repo.ListFollowees(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followees: %w", err)
	}
	return followees, nil
}

// ListFollowers returns the IDs of users following userID
func (s *graphService) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	followers, err := s.repo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return followers, nil
}

// ListSubscriptions returns the full subscription records for userID
func (s *graphService) ListSubscriptions(ctx context.Context, userID int64) ([]*FollowEdge, error) {
	edges, err := s.repo.ListEdges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return edges, nil
}

// record writes an audit entry; audit failure never fails the mutation
func (s *graphService) record(ctx context.Context, actorID int64, action string, targetID int64) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, audit.NewEntry(actorID, action, targetID)); err != nil {
		s.logger.Warn("failed to record audit entry",
			"actor", actorID,
			"action", action,
			"target", targetID,
			"error", err)
	}
}
