package subscriptions

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Chatty/internal/core/content"
	"Chatty/internal/core/feed"
	"Chatty/internal/core/graph"
)

// APIError is the JSON error body shared by all subscription endpoints
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Error: errCode, Message: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// handleServiceError converts domain errors to HTTP responses. Graph
// mutation failures get a specific 4xx so clients can react (no error
// dialog for an "already subscribed" double-click); upstream failures get
// a retryable 503.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, graph.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Cannot subscribe to yourself")
	case graph.IsConflict(err):
		writeError(w, http.StatusConflict, "AlreadySubscribed", "Already subscribed")
	case graph.IsNotFound(err):
		writeError(w, http.StatusNotFound, "NotFound", "Subscription not found")
	case errors.Is(err, feed.ErrFeedUnavailable):
		writeError(w, http.StatusServiceUnavailable, "FeedUnavailable", "Feed is temporarily unavailable, retry later")
	case errors.Is(err, content.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "ContentServiceUnavailable", "Post service is temporarily unavailable, retry later")
	default:
		slog.Error("subscription handler error", "error", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
