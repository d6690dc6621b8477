package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPResolver resolves credentials against the auth service's internal
// user-id endpoint. Every call is a remote check; wrap with
// NewCachingResolver when positive results may be reused.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver creates a resolver backed by the auth service at baseURL.
// timeout bounds each verification call.
func NewHTTPResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Resolve verifies the bearer token with the auth service and returns the
// user ID it belongs to.
func (r *HTTPResolver) Resolve(ctx context.Context, credential string) (int64, error) {
	url := r.baseURL + "/auth/internal/user-id"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAuthorityUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return 0, ErrUnauthenticated
	default:
		// Limit error body to 1KB to prevent unbounded reads
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("%w: unexpected status %d: %s", ErrAuthorityUnavailable, resp.StatusCode, string(body))
	}

	var payload struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrAuthorityUnavailable, err)
	}
	if payload.UserID == 0 {
		return 0, ErrUnauthenticated
	}

	return payload.UserID, nil
}
