package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"Chatty/internal/core/audit"
)

// LogsHandler serves the audit-log listing for the admin overlay
type LogsHandler struct {
	recorder audit.Recorder
}

// NewLogsHandler creates a new audit-log handler
func NewLogsHandler(recorder audit.Recorder) *LogsHandler {
	return &LogsHandler{recorder: recorder}
}

// LogsResponse is the audit listing JSON body
type LogsResponse struct {
	Logs []audit.Entry `json:"logs"`
}

// HandleList returns audit entries, newest first
// GET /admin/logs?limit=50&offset=0
func (h *LogsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit > 200 {
		limit = 200
	}
	offset := queryInt(r, "offset", 0)

	entries, err := h.recorder.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("failed to list audit entries", "error", err)
		http.Error(w, "failed to list audit entries", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []audit.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LogsResponse{Logs: entries}); err != nil {
		slog.Error("failed to encode audit response", "error", err)
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
