package repositories

import (
	"context"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// SurgeryRepository defines the interface for surgery data operations
type SurgeryRepository interface {
	// List retrieves all surgeries ordered by scheduled time ascending
	List(ctx context.Context) ([]*entities.Surgery, error)

	// GetByID retrieves a surgery by ID
	GetByID(ctx context.Context, id string) (*entities.Surgery, error)

	// Create inserts a new surgery
	Create(ctx context.Context, surgery *entities.Surgery) error

	// Update updates an existing surgery
	Update(ctx context.Context, surgery *entities.Surgery) error

	// Save upserts: an empty ID means insert (assigning a new ID), a
	// present ID means update
	Save(ctx context.Context, surgery *entities.Surgery) error

	// Delete removes a surgery by ID
	Delete(ctx context.Context, id string) error
}
