package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
)

type contextKey string

const profileContextKey contextKey = "profile"

// SessionMiddleware resolves the session token on every request and injects
// the profile into the request context. Requests without a valid session get
// a 401. EventSource cannot set headers, so the token may also arrive as a
// token query parameter.
func SessionMiddleware(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = r.URL.Query().Get("token")
			}

			profile, err := auth.ProfileForToken(r.Context(), token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
				return
			}

			ctx := context.WithValue(r.Context(), profileContextKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ProfileFromContext returns the authenticated profile, if any
func ProfileFromContext(ctx context.Context) (*entities.UserProfile, bool) {
	profile, ok := ctx.Value(profileContextKey).(*entities.UserProfile)
	return profile, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}
