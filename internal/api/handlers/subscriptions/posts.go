package subscriptions

import (
	"net/http"

	"Chatty/internal/api/middleware"
	"Chatty/internal/core/content"
)

// UserPostsHandler serves a single user's posts (profile views)
type UserPostsHandler struct {
	fetcher content.Fetcher
}

// NewUserPostsHandler creates a new user-posts handler
func NewUserPostsHandler(fetcher content.Fetcher) *UserPostsHandler {
	return &UserPostsHandler{fetcher: fetcher}
}

// HandleUserPosts returns all posts of the user in the path
// GET /subscriptions/users/{userID}/posts
func (h *UserPostsHandler) HandleUserPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r); !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	targetID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	posts, err := h.fetcher.FetchForUser(r.Context(), targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if posts == nil {
		posts = []content.Post{}
	}
	writeJSON(w, posts)
}
