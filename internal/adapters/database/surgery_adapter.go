package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/repositories"
	"github.com/surgiplan/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/surgiplan/backend/pkg/errors"
)

var surgeryColumns = []interface{}{
	"id", "patient_name", "main_surgeon_id", "participating_ids",
	"scheduled_at", "hospital_id", "insurance_plan_id",
	"authorization_status", "status", "total_value", "materials", "notes",
	"created_at", "updated_at",
}

// SurgeryAdapter implements the SurgeryRepository interface
type SurgeryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSurgeryAdapter creates a new surgery adapter
func NewSurgeryAdapter(client *postgres.Client) repositories.SurgeryRepository {
	return &SurgeryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func surgeryRecord(s *entities.Surgery) (goqu.Record, error) {
	materials, err := json.Marshal(s.Materials)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode materials", err)
	}

	return goqu.Record{
		"id":                   s.ID,
		"patient_name":         s.PatientName,
		"main_surgeon_id":      s.MainSurgeonID,
		"participating_ids":    pq.Array(s.ParticipatingIDs),
		"scheduled_at":         s.ScheduledAt,
		"hospital_id":          s.HospitalID,
		"insurance_plan_id":    s.InsurancePlanID,
		"authorization_status": s.AuthorizationStatus,
		"status":               s.Status,
		"total_value":          s.TotalValue,
		"materials":            materials,
		"notes":                s.Notes,
		"created_at":           s.CreatedAt,
		"updated_at":           s.UpdatedAt,
	}, nil
}

func scanSurgery(scan func(dest ...interface{}) error) (*entities.Surgery, error) {
	s := &entities.Surgery{}
	var participating pq.StringArray
	var materials []byte
	var hospitalID, insurancePlanID, notes sql.NullString

	err := scan(
		&s.ID,
		&s.PatientName,
		&s.MainSurgeonID,
		&participating,
		&s.ScheduledAt,
		&hospitalID,
		&insurancePlanID,
		&s.AuthorizationStatus,
		&s.Status,
		&s.TotalValue,
		&materials,
		&notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.ParticipatingIDs = participating
	s.HospitalID = hospitalID.String
	s.InsurancePlanID = insurancePlanID.String
	s.Notes = notes.String

	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &s.Materials); err != nil {
			return nil, apperrors.NewInternalError("failed to decode materials", err)
		}
	}
	return s, nil
}

// List retrieves all surgeries ordered by scheduled time ascending
func (a *SurgeryAdapter) List(ctx context.Context) ([]*entities.Surgery, error) {
	query, args, err := a.db.Select(surgeryColumns...).
		From("surgeries").
		Order(goqu.I("scheduled_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list surgeries", err)
	}
	defer rows.Close()

	var surgeries []*entities.Surgery
	for rows.Next() {
		s, err := scanSurgery(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan surgery", err)
		}
		surgeries = append(surgeries, s)
	}
	return surgeries, rows.Err()
}

// GetByID retrieves a surgery by ID
func (a *SurgeryAdapter) GetByID(ctx context.Context, id string) (*entities.Surgery, error) {
	query, args, err := a.db.Select(surgeryColumns...).
		From("surgeries").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	s, err := scanSurgery(a.client.DB().QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("surgery with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get surgery", err)
	}
	return s, nil
}

// Create inserts a new surgery
func (a *SurgeryAdapter) Create(ctx context.Context, surgery *entities.Surgery) error {
	record, err := surgeryRecord(surgery)
	if err != nil {
		return err
	}

	query, args, err := a.db.Insert("surgeries").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create surgery", err)
	}
	return nil
}

// Update updates an existing surgery
func (a *SurgeryAdapter) Update(ctx context.Context, surgery *entities.Surgery) error {
	surgery.UpdatedAt = time.Now()

	record, err := surgeryRecord(surgery)
	if err != nil {
		return err
	}
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("surgeries").
		Set(record).
		Where(goqu.Ex{"id": surgery.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update surgery", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("surgery with id %s not found", surgery.ID))
	}
	return nil
}

// Save upserts by presence of ID: an empty ID inserts with a new ID, a
// present ID updates.
func (a *SurgeryAdapter) Save(ctx context.Context, surgery *entities.Surgery) error {
	if surgery.ID == "" {
		surgery.ID = uuid.New().String()
		surgery.CreatedAt = time.Now()
		surgery.UpdatedAt = surgery.CreatedAt
		return a.Create(ctx, surgery)
	}
	return a.Update(ctx, surgery)
}

// Delete removes a surgery by ID
func (a *SurgeryAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("surgeries").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete surgery", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("surgery with id %s not found", id))
	}
	return nil
}
