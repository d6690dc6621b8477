package routes

import (
	"github.com/go-chi/chi/v5"

	"Chatty/internal/api/handlers/admin"
	"Chatty/internal/api/middleware"
	"Chatty/internal/core/audit"
)

// RegisterAdminRoutes registers the administrative overlay endpoints
func RegisterAdminRoutes(r chi.Router, recorder audit.Recorder, auth *middleware.AuthMiddleware) {
	logsHandler := admin.NewLogsHandler(recorder)

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/logs", logsHandler.HandleList)
	})
}
