package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Chatty/internal/core/content"
)

// fakeGraph implements FollowGraph for assembler tests
type fakeGraph struct {
	followees map[int64][]int64
	followers map[int64][]int64
	err       error
}

func (g *fakeGraph) ListFollowees(ctx context.Context, userID int64) ([]int64, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.followees[userID], nil
}

func (g *fakeGraph) ListFollowers(ctx context.Context, userID int64) ([]int64, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.followers[userID], nil
}

// fakeFetcher implements content.Fetcher and counts batch calls
type fakeFetcher struct {
	mu    sync.Mutex
	posts map[int64][]content.Post
	err   error
	calls int
}

func (f *fakeFetcher) FetchForUsers(ctx context.Context, userIDs []int64) ([]content.Post, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var all []content.Post
	for _, id := range userIDs {
		all = append(all, f.posts[id]...)
	}
	return all, nil
}

func (f *fakeFetcher) FetchForUser(ctx context.Context, userID int64) ([]content.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posts[userID], nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(g *fakeGraph, f *fakeFetcher) (Service, *Cache) {
	cache := NewCache(time.Minute, 5*time.Second, nil)
	return NewFeedService(g, f, cache, 0, nil), cache
}

func TestGetFeed_Ordering(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	graph := &fakeGraph{followees: map[int64][]int64{1: {10}}}
	fetcher := &fakeFetcher{posts: map[int64][]content.Post{
		10: {
			{ID: 5, AuthorID: 10, CreatedAt: base.Add(-2 * time.Hour)},
			{ID: 3, AuthorID: 10, CreatedAt: base.Add(-2 * time.Hour)},
			{ID: 9, AuthorID: 10, CreatedAt: base.Add(-1 * time.Hour)},
		},
	}}

	svc, _ := newTestService(graph, fetcher)

	posts, err := svc.GetFeed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// Most recent first; equal timestamps break the tie on higher ID
	assert.Equal(t, int64(9), posts[0].ID)
	assert.Equal(t, int64(5), posts[1].ID)
	assert.Equal(t, int64(3), posts[2].ID)
}

func TestGetFeed_ColdThenCachedThenInvalidated(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	graph := &fakeGraph{
		followees: map[int64][]int64{1: {10, 20}},
		followers: map[int64][]int64{10: {1}},
	}
	fetcher := &fakeFetcher{posts: map[int64][]content.Post{
		10: {{ID: 100, AuthorID: 10, CreatedAt: t1}},
		20: {{ID: 200, AuthorID: 20, CreatedAt: t2}},
	}}

	svc, _ := newTestService(graph, fetcher)
	ctx := context.Background()

	// Cold cache: one fetch, newest post first
	posts, err := svc.GetFeed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(200), posts[0].ID)
	assert.Equal(t, int64(100), posts[1].ID)
	assert.Equal(t, 1, fetcher.callCount())

	// Warm cache: same result, no additional fetch
	again, err := svc.GetFeed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, posts, again)
	assert.Equal(t, 1, fetcher.callCount())

	// PostCreated by user 10 invalidates follower 1's feed
	require.NoError(t, svc.HandlePostCreated(ctx, 10))

	_, err = svc.GetFeed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount(), "cache miss after invalidation must refetch")
}

func TestGetFeed_NoFolloweesSkipsFetch(t *testing.T) {
	graph := &fakeGraph{followees: map[int64][]int64{}}
	fetcher := &fakeFetcher{}

	svc, _ := newTestService(graph, fetcher)

	posts, err := svc.GetFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, 0, fetcher.callCount(), "empty followee set must not call the post service")
}

func TestGetFeed_FetchFailureSurfacesFeedUnavailable(t *testing.T) {
	graph := &fakeGraph{followees: map[int64][]int64{1: {10}}}
	fetcher := &fakeFetcher{err: content.ErrServiceUnavailable}

	svc, cache := newTestService(graph, fetcher)

	_, err := svc.GetFeed(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFeedUnavailable)
	assert.Equal(t, 0, cache.Len(), "failed assembly must not populate the cache")
}

func TestGetFeed_GraphFailureSurfacesFeedUnavailable(t *testing.T) {
	graph := &fakeGraph{err: errors.New("connection refused")}
	fetcher := &fakeFetcher{}

	svc, _ := newTestService(graph, fetcher)

	_, err := svc.GetFeed(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestHandlePostCreated_FanOut(t *testing.T) {
	graph := &fakeGraph{
		followees: map[int64][]int64{
			1: {100}, 2: {100}, 3: {100}, 4: {999},
		},
		followers: map[int64][]int64{100: {1, 2, 3}},
	}
	fetcher := &fakeFetcher{posts: map[int64][]content.Post{
		100: {{ID: 1, AuthorID: 100, CreatedAt: time.Now()}},
		999: {{ID: 2, AuthorID: 999, CreatedAt: time.Now()}},
	}}

	svc, cache := newTestService(graph, fetcher)
	ctx := context.Background()

	// Warm every cache
	for _, u := range []int64{1, 2, 3, 4} {
		_, err := svc.GetFeed(ctx, u)
		require.NoError(t, err)
	}
	require.Equal(t, 4, cache.Len())

	require.NoError(t, svc.HandlePostCreated(ctx, 100))

	// Followers of 100 lose their entries; user 4 is untouched
	for _, u := range []int64{1, 2, 3} {
		_, ok := cache.Get(u)
		assert.Falsef(t, ok, "follower %d should have been invalidated", u)
	}
	_, ok := cache.Get(4)
	assert.True(t, ok, "unrelated user's entry must survive the fan-out")
}

func TestHandlePostCreated_Duplicate(t *testing.T) {
	graph := &fakeGraph{followers: map[int64][]int64{100: {1, 2}}}
	fetcher := &fakeFetcher{}

	svc, _ := newTestService(graph, fetcher)
	ctx := context.Background()

	// At-least-once delivery: duplicates must be harmless
	require.NoError(t, svc.HandlePostCreated(ctx, 100))
	require.NoError(t, svc.HandlePostCreated(ctx, 100))
}

func TestHandlePostCreated_GraphFailureIsReturned(t *testing.T) {
	graph := &fakeGraph{err: errors.New("store down")}
	fetcher := &fakeFetcher{}

	svc, _ := newTestService(graph, fetcher)

	err := svc.HandlePostCreated(context.Background(), 100)
	require.Error(t, err, "a lost invalidation is a correctness defect; the error must propagate for retry")
}

func TestGetFeed_DeduplicatesFollowees(t *testing.T) {
	graph := &fakeGraph{followees: map[int64][]int64{1: {10, 10, 10}}}
	fetcher := &fakeFetcher{posts: map[int64][]content.Post{
		10: {{ID: 1, AuthorID: 10, CreatedAt: time.Now()}},
	}}

	svc, _ := newTestService(graph, fetcher)

	posts, err := svc.GetFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, posts, 1, "duplicate followee ids must not duplicate posts")
}
