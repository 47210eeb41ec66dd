package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/repositories"
	"github.com/surgiplan/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/surgiplan/backend/pkg/errors"
)

// UserProfileAdapter implements the UserProfileRepository interface. It uses
// sqlx struct scanning since profile rows map 1:1 onto the entity.
type UserProfileAdapter struct {
	db *sqlx.DB
}

// NewUserProfileAdapter creates a new user profile adapter
func NewUserProfileAdapter(client *postgres.Client) repositories.UserProfileRepository {
	return &UserProfileAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// List retrieves all profiles ordered by email
func (a *UserProfileAdapter) List(ctx context.Context) ([]*entities.UserProfile, error) {
	var profiles []*entities.UserProfile
	err := a.db.SelectContext(ctx, &profiles,
		`SELECT id, email, password_hash, doctor_id, is_admin, created_at, updated_at
		 FROM user_profiles ORDER BY email`)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list user profiles", err)
	}
	return profiles, nil
}

// GetByEmail retrieves a profile by login email
func (a *UserProfileAdapter) GetByEmail(ctx context.Context, email string) (*entities.UserProfile, error) {
	profile := &entities.UserProfile{}
	err := a.db.GetContext(ctx, profile,
		`SELECT id, email, password_hash, doctor_id, is_admin, created_at, updated_at
		 FROM user_profiles WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user profile", err)
	}
	return profile, nil
}

// Save upserts a profile by presence of ID
func (a *UserProfileAdapter) Save(ctx context.Context, profile *entities.UserProfile) error {
	profile.UpdatedAt = time.Now()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
		profile.CreatedAt = profile.UpdatedAt

		_, err := a.db.ExecContext(ctx,
			`INSERT INTO user_profiles (id, email, password_hash, doctor_id, is_admin, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			profile.ID, profile.Email, profile.PasswordHash, profile.DoctorID,
			profile.IsAdmin, profile.CreatedAt, profile.UpdatedAt)
		if err != nil {
			return apperrors.NewInternalError("failed to create user profile", err)
		}
		return nil
	}

	result, err := a.db.ExecContext(ctx,
		`UPDATE user_profiles
		 SET email = $2, password_hash = $3, doctor_id = $4, is_admin = $5, updated_at = $6
		 WHERE id = $1`,
		profile.ID, profile.Email, profile.PasswordHash, profile.DoctorID,
		profile.IsAdmin, profile.UpdatedAt)
	if err != nil {
		return apperrors.NewInternalError("failed to update user profile", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("profile with id %s not found", profile.ID))
	}
	return nil
}

// Delete removes a profile by ID
func (a *UserProfileAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternalError("failed to delete user profile", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("profile with id %s not found", id))
	}
	return nil
}
