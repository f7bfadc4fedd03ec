package http

import (
	"net/http"
	"strings"
	"time"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/logger"
	"campus-events-backend/internal/security"
)

// AuthMiddleware validates the identity provider's bearer token and places
// the caller's identity on the request context.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHENTICATED", Error: "authorization token is not provided"})
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := tm.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHENTICATED", Error: err.Error()})
				return
			}

			identity := domain.Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

// LoggingMiddleware records every request with its duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
