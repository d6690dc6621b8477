package subscriptions

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Chatty/internal/api/middleware"
	"Chatty/internal/core/graph"
)

// SubscribeHandler handles follow/unfollow mutations
type SubscribeHandler struct {
	service graph.Service
}

// NewSubscribeHandler creates a new subscribe handler
func NewSubscribeHandler(service graph.Service) *SubscribeHandler {
	return &SubscribeHandler{service: service}
}

// HandleSubscribe subscribes the authenticated user to another user
// POST /subscriptions/subscribe/{userID}
func (h *SubscribeHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	targetID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Subscribe(r.Context(), currentUser, targetID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeDetail(w, "Subscribed successfully")
}

// HandleUnsubscribe removes the authenticated user's subscription
// DELETE /subscriptions/unsubscribe/{userID}
func (h *SubscribeHandler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	targetID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(r.Context(), currentUser, targetID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeDetail(w, "Unsubscribed successfully")
}

// pathUserID parses the {userID} path parameter, writing a 400 on failure
func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "userID must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeDetail(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"detail": detail}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
