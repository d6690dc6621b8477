package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Chatty/internal/core/identity"
)

// contextKey keeps request-context keys private to this package
type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware enforces bearer-token authentication for protected routes.
// The resolver turns the credential into a numeric user ID, which is then
// available to handlers via UserID(r).
type AuthMiddleware struct {
	resolver identity.Resolver
	logger   *slog.Logger
}

// NewAuthMiddleware creates the auth middleware around the given resolver
func NewAuthMiddleware(resolver identity.Resolver, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid bearer token. Bad credentials
// get a 401; an unreachable identity authority gets a retryable 503 instead
// of being conflated with a bad token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := m.resolver.Resolve(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrAuthorityUnavailable):
				m.logger.Warn("identity authority unavailable",
					"path", r.URL.Path,
					"error", err)
				writeAuthError(w, http.StatusServiceUnavailable, "Authentication service unavailable, retry later")
			default:
				m.logger.Info("rejected credential",
					"path", r.URL.Path,
					"remote", r.RemoteAddr)
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user's ID from the request context.
// The second return is false when the request did not pass RequireAuth.
func UserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(userIDKey).(int64)
	return userID, ok
}

// WithUserID injects a user ID into ctx; test helper for handler tests
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
