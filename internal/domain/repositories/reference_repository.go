package repositories

import (
	"context"

	"github.com/surgiplan/backend/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor reference data
type DoctorRepository interface {
	// List retrieves all doctors ordered by name
	List(ctx context.Context) ([]*entities.Doctor, error)

	// Save upserts a doctor by presence of ID
	Save(ctx context.Context, doctor *entities.Doctor) error

	// Delete removes a doctor by ID
	Delete(ctx context.Context, id string) error
}

// HospitalRepository defines the interface for hospital reference data
type HospitalRepository interface {
	// List retrieves all hospitals ordered by name
	List(ctx context.Context) ([]*entities.Hospital, error)

	// Save upserts a hospital by presence of ID
	Save(ctx context.Context, hospital *entities.Hospital) error

	// Delete removes a hospital by ID
	Delete(ctx context.Context, id string) error
}

// InsurancePlanRepository defines the interface for insurance plan reference data
type InsurancePlanRepository interface {
	// List retrieves all insurance plans ordered by name
	List(ctx context.Context) ([]*entities.InsurancePlan, error)

	// Save upserts an insurance plan by presence of ID
	Save(ctx context.Context, plan *entities.InsurancePlan) error

	// Delete removes an insurance plan by ID
	Delete(ctx context.Context, id string) error
}
