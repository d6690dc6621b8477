package subscriptions

import (
	"net/http"

	"Chatty/internal/api/middleware"
	"Chatty/internal/core/content"
	"Chatty/internal/core/feed"
)

// FeedHandler serves the personalized feed
type FeedHandler struct {
	feeds feed.Service
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feeds feed.Service) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

// FeedResponse is the feed endpoint's JSON body
type FeedResponse struct {
	Posts []content.Post `json:"posts"`
}

// HandleFeed returns posts from everyone the authenticated user follows,
// most recent first
// GET /subscriptions/feed
func (h *FeedHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	posts, err := h.feeds.GetFeed(r.Context(), currentUser)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, FeedResponse{Posts: posts})
}
