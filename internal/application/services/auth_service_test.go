package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgiplan/backend/internal/adapters/cache"
	"github.com/surgiplan/backend/internal/adapters/memory"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
)

func newAuthService(t *testing.T) (*services.AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()

	hash, err := services.HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, store.UserProfiles().Save(context.Background(), &entities.UserProfile{
		Email:        "rep@surgiplan.com",
		PasswordHash: hash,
		DoctorID:     "doc-1",
	}))

	return services.NewAuthService(store.UserProfiles(), cache.NewMemoryAdapter(), time.Hour), store
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a token resolvable to the profile", func(t *testing.T) {
		svc, _ := newAuthService(t)

		session, err := svc.Login(context.Background(), "rep@surgiplan.com", "s3cret")
		require.NoError(t, err)
		require.NotEmpty(t, session.Token)

		profile, err := svc.ProfileForToken(context.Background(), session.Token)
		require.NoError(t, err)
		assert.Equal(t, "rep@surgiplan.com", profile.Email)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Login(context.Background(), "rep@surgiplan.com", "wrong")
		assert.Error(t, err)
	})

	t.Run("rejects an unknown account with the same message", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, wrongPassword := svc.Login(context.Background(), "rep@surgiplan.com", "wrong")
		_, unknownUser := svc.Login(context.Background(), "nobody@surgiplan.com", "s3cret")

		assert.EqualError(t, unknownUser, wrongPassword.Error())
	})

	t.Run("normalizes the login email", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Login(context.Background(), "  REP@surgiplan.com ", "s3cret")
		assert.NoError(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("invalidates the token", func(t *testing.T) {
		svc, _ := newAuthService(t)

		session, err := svc.Login(context.Background(), "rep@surgiplan.com", "s3cret")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(context.Background(), session.Token))

		_, err = svc.ProfileForToken(context.Background(), session.Token)
		assert.Error(t, err)
	})

	t.Run("signing out an empty token is a no-op", func(t *testing.T) {
		svc, _ := newAuthService(t)
		assert.NoError(t, svc.Logout(context.Background(), ""))
	})
}
