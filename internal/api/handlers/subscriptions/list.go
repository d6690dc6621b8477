package subscriptions

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Chatty/internal/api/middleware"
	"Chatty/internal/core/graph"
)

// ListHandler serves the follow-graph read endpoints
type ListHandler struct {
	service graph.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service graph.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleFollowing lists the user IDs the authenticated user follows
// GET /subscriptions/following
func (h *ListHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	ids, err := h.service.ListFollowees(r.Context(), currentUser)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, idsOrEmpty(ids))
}

// HandleFollowers lists the user IDs following the authenticated user
// GET /subscriptions/followers
func (h *ListHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	ids, err := h.service.ListFollowers(r.Context(), currentUser)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, idsOrEmpty(ids))
}

// HandleSubscriptions lists the authenticated user's subscription records
// GET /subscriptions/subscriptions
func (h *ListHandler) HandleSubscriptions(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	edges, err := h.service.ListSubscriptions(r.Context(), currentUser)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if edges == nil {
		edges = []*graph.FollowEdge{}
	}
	writeJSON(w, edges)
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
