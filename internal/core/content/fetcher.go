package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPFetcher fetches posts from the post service over HTTP
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	breaker *circuitBreaker
}

// NewHTTPFetcher creates a fetcher for the post service at baseURL.
// timeout bounds each remote call.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: newCircuitBreaker(),
	}
}

// FetchForUsers returns posts authored by any of the given users
func (f *HTTPFetcher) FetchForUsers(ctx context.Context, userIDs []int64) ([]Post, error) {
	// Empty follow lists are common; don't waste a round trip on them
	if len(userIDs) == 0 {
		return []Post{}, nil
	}

	params := url.Values{}
	for _, id := range userIDs {
		params.Add("user_ids", strconv.FormatInt(id, 10))
	}

	return f.fetch(ctx, f.baseURL+"/posts?"+params.Encode())
}

// FetchForUser returns all posts of a single user
func (f *HTTPFetcher) FetchForUser(ctx context.Context, userID int64) ([]Post, error) {
	return f.fetch(ctx, fmt.Sprintf("%s/posts/users/%d/posts", f.baseURL, userID))
}

func (f *HTTPFetcher) fetch(ctx context.Context, requestURL string) ([]Post, error) {
	if err := f.breaker.canAttempt(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.breaker.recordFailure()
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		f.breaker.recordFailure()
		// Limit error body to 1KB to prevent unbounded reads
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
	}

	var posts []Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		f.breaker.recordFailure()
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrServiceUnavailable, err)
	}

	f.breaker.recordSuccess()
	return posts, nil
}
