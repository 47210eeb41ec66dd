package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgiplan/backend/internal/adapters/cache"
	"github.com/surgiplan/backend/internal/adapters/memory"
	"github.com/surgiplan/backend/internal/api/middleware"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
)

func newSession(t *testing.T) (*services.AuthService, string) {
	t.Helper()
	store := memory.NewStore()

	hash, err := services.HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, store.UserProfiles().Save(context.Background(), &entities.UserProfile{
		Email:        "rep@surgiplan.com",
		PasswordHash: hash,
	}))

	auth := services.NewAuthService(store.UserProfiles(), cache.NewMemoryAdapter(), time.Hour)
	session, err := auth.Login(context.Background(), "rep@surgiplan.com", "s3cret")
	require.NoError(t, err)
	return auth, session.Token
}

func TestSessionMiddleware(t *testing.T) {
	auth, token := newSession(t)

	var seen *entities.UserProfile
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := middleware.ProfileFromContext(r.Context())
		require.True(t, ok)
		seen = profile
		w.WriteHeader(http.StatusOK)
	})
	protected := middleware.SessionMiddleware(auth)(next)

	t.Run("passes through with a bearer token and injects the profile", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "rep@surgiplan.com", seen.Email)
	})

	t.Run("accepts the token as a query parameter for SSE", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/notifications/stream?token="+token, nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a stale token after logout", func(t *testing.T) {
		require.NoError(t, auth.Logout(context.Background(), token))

		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
