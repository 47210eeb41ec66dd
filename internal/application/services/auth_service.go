package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/providers"
	"github.com/surgiplan/backend/internal/domain/repositories"
	apperrors "github.com/surgiplan/backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyPrefix = "session:"

// Session pairs an opaque token with the profile it authenticates
type Session struct {
	Token   string                `json:"token"`
	Profile *entities.UserProfile `json:"profile"`
}

// AuthService manages representative sessions. Tokens are opaque, stored in
// the cache with a TTL. A missing session or profile means the client
// renders nothing beyond the login view; there is no separate error path.
type AuthService struct {
	profiles repositories.UserProfileRepository
	cache    providers.CacheProvider
	ttl      time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(profiles repositories.UserProfileRepository, cache providers.CacheProvider, ttl time.Duration) *AuthService {
	return &AuthService{profiles: profiles, cache: cache, ttl: ttl}
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifies credentials and issues a session token
func (a *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	profile, err := a.profiles.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	session := &Session{
		Token:   uuid.New().String(),
		Profile: profile,
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode session", err)
	}
	if err := a.cache.Set(ctx, sessionKeyPrefix+session.Token, data, int(a.ttl.Seconds())); err != nil {
		return nil, apperrors.NewInternalError("failed to store session", err)
	}

	return session, nil
}

// ProfileForToken resolves a session token to its profile
func (a *AuthService) ProfileForToken(ctx context.Context, token string) (*entities.UserProfile, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("no session")
	}

	data, err := a.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("session expired or unknown")
	}

	profile := &entities.UserProfile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session", err)
	}
	return profile, nil
}

// Logout invalidates a session token. Signing out an unknown token is not
// an error.
func (a *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.cache.Delete(ctx, sessionKeyPrefix+token)
}
