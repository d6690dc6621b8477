package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/samber/lo"

	"Chatty/internal/core/content"
)

// defaultFanoutBatch bounds how many followers are invalidated in one cache
// call, so a notification for a very popular author doesn't stall the
// consumer loop in a single huge bulk operation.
const defaultFanoutBatch = 500

type feedService struct {
	graph       FollowGraph
	fetcher     content.Fetcher
	cache       *Cache
	fanoutBatch int
	logger      *slog.Logger
}

// NewFeedService creates the feed assembler. fanoutBatch <= 0 selects the
// default batch size.
func NewFeedService(graph FollowGraph, fetcher content.Fetcher, cache *Cache, fanoutBatch int, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if fanoutBatch <= 0 {
		fanoutBatch = defaultFanoutBatch
	}
	return &feedService{
		graph:       graph,
		fetcher:     fetcher,
		cache:       cache,
		fanoutBatch: fanoutBatch,
		logger:      logger,
	}
}

// GetFeed assembles the feed for userID: cache lookup, then follow-graph
// lookup, then a batched content fetch, then cache population.
func (s *feedService) GetFeed(ctx context.Context, userID int64) ([]content.Post, error) {
	if posts, ok := s.cache.Get(userID); ok {
		return posts, nil
	}

	// Snapshot before any remote call so an invalidation that lands while
	// we assemble wins over our populate
	stamp := s.cache.Snapshot(userID)

	followees, err := s.graph.ListFollowees(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	if len(followees) == 0 {
		// Cached only briefly so a just-added first follow isn't masked
		s.cache.PutIfFresh(userID, []content.Post{}, stamp)
		return []content.Post{}, nil
	}

	posts, err := s.fetcher.FetchForUsers(ctx, lo.Uniq(followees))
	if err != nil {
		// Do not cache; the caller decides whether to retry
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	sortFeed(posts)

	if !s.cache.PutIfFresh(userID, posts, stamp) {
		s.logger.Debug("feed populated during invalidation, serving uncached result", "user", userID)
	}

	return posts, nil
}

// HandlePostCreated fans a PostCreated notification out to the author's
// followers by invalidating their cached feeds.
func (s *feedService) HandlePostCreated(ctx context.Context, authorID int64) error {
	followers, err := s.graph.ListFollowers(ctx, authorID)
	if err != nil {
		// A lost invalidation means observably stale feeds; the caller must
		// retry rather than drop the notification
		return fmt.Errorf("failed to list followers of %d: %w", authorID, err)
	}

	if len(followers) == 0 {
		return nil
	}

	for _, batch := range lo.Chunk(followers, s.fanoutBatch) {
		s.cache.InvalidateMany(batch)
	}

	s.logger.Info("invalidated follower feeds",
		"author", authorID,
		"followers", len(followers))

	return nil
}

// sortFeed orders posts most recent first. Equal timestamps tie-break on
// higher post ID so the ordering is deterministic.
func sortFeed(posts []content.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
