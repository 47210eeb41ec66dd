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

// HospitalAdapter implements the HospitalRepository interface
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all hospitals ordered by name
func (a *HospitalAdapter) List(ctx context.Context) ([]*entities.Hospital, error) {
	query, args, err := a.db.Select("id", "name", "created_at", "updated_at").
		From("hospitals").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospitals", err)
	}
	defer rows.Close()

	var hospitals []*entities.Hospital
	for rows.Next() {
		h := &entities.Hospital{}
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, rows.Err()
}

// Save upserts a hospital by presence of ID
func (a *HospitalAdapter) Save(ctx context.Context, hospital *entities.Hospital) error {
	hospital.UpdatedAt = time.Now()

	if hospital.ID == "" {
		hospital.ID = uuid.New().String()
		hospital.CreatedAt = hospital.UpdatedAt

		query, args, err := a.db.Insert("hospitals").Rows(goqu.Record{
			"id":         hospital.ID,
			"name":       hospital.Name,
			"created_at": hospital.CreatedAt,
			"updated_at": hospital.UpdatedAt,
		}).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to create hospital", err)
		}
		return nil
	}

	query, args, err := a.db.Update("hospitals").Set(goqu.Record{
		"name":       hospital.Name,
		"updated_at": hospital.UpdatedAt,
	}).Where(goqu.Ex{"id": hospital.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update hospital", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", hospital.ID))
	}
	return nil
}

// Delete removes a hospital by ID
func (a *HospitalAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("hospitals").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete hospital", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	return nil
}
