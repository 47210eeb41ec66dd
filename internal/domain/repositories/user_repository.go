package repositories

import (
	"context"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// UserProfileRepository defines the interface for representative profiles
type UserProfileRepository interface {
	// List retrieves all profiles ordered by email
	List(ctx context.Context) ([]*entities.UserProfile, error)

	// GetByEmail retrieves a profile by login email
	GetByEmail(ctx context.Context, email string) (*entities.UserProfile, error)

	// Save upserts a profile by presence of ID
	Save(ctx context.Context, profile *entities.UserProfile) error

	// Delete removes a profile by ID
	Delete(ctx context.Context, id string) error
}
