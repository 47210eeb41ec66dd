package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/repositories"
	"github.com/surgiplan/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/surgiplan/backend/pkg/errors"
)

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all doctors ordered by name
func (a *DoctorAdapter) List(ctx context.Context) ([]*entities.Doctor, error) {
	query, args, err := a.db.Select("id", "name", "color", "created_at", "updated_at").
		From("doctors").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	var doctors []*entities.Doctor
	for rows.Next() {
		d := &entities.Doctor{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Color, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

// Save upserts a doctor by presence of ID
func (a *DoctorAdapter) Save(ctx context.Context, doctor *entities.Doctor) error {
	doctor.UpdatedAt = time.Now()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
		doctor.CreatedAt = doctor.UpdatedAt

		query, args, err := a.db.Insert("doctors").Rows(goqu.Record{
			"id":         doctor.ID,
			"name":       doctor.Name,
			"color":      doctor.Color,
			"created_at": doctor.CreatedAt,
			"updated_at": doctor.UpdatedAt,
		}).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to create doctor", err)
		}
		return nil
	}

	query, args, err := a.db.Update("doctors").Set(goqu.Record{
		"name":       doctor.Name,
		"color":      doctor.Color,
		"updated_at": doctor.UpdatedAt,
	}).Where(goqu.Ex{"id": doctor.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update doctor", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", doctor.ID))
	}
	return nil
}

// Delete removes a doctor by ID
func (a *DoctorAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("doctors").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete doctor", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}
	return nil
}
