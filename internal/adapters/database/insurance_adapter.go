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

// InsurancePlanAdapter implements the InsurancePlanRepository interface
type InsurancePlanAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewInsurancePlanAdapter creates a new insurance plan adapter
func NewInsurancePlanAdapter(client *postgres.Client) repositories.InsurancePlanRepository {
	return &InsurancePlanAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all insurance plans ordered by name
func (a *InsurancePlanAdapter) List(ctx context.Context) ([]*entities.InsurancePlan, error) {
	query, args, err := a.db.Select("id", "name", "created_at", "updated_at").
		From("insurance_plans").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list insurance plans", err)
	}
	defer rows.Close()

	var plans []*entities.InsurancePlan
	for rows.Next() {
		p := &entities.InsurancePlan{}
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan insurance plan", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Save upserts an insurance plan by presence of ID
func (a *InsurancePlanAdapter) Save(ctx context.Context, plan *entities.InsurancePlan) error {
	plan.UpdatedAt = time.Now()

	if plan.ID == "" {
		plan.ID = uuid.New().String()
		plan.CreatedAt = plan.UpdatedAt

		query, args, err := a.db.Insert("insurance_plans").Rows(goqu.Record{
			"id":         plan.ID,
			"name":       plan.Name,
			"created_at": plan.CreatedAt,
			"updated_at": plan.UpdatedAt,
		}).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to create insurance plan", err)
		}
		return nil
	}

	query, args, err := a.db.Update("insurance_plans").Set(goqu.Record{
		"name":       plan.Name,
		"updated_at": plan.UpdatedAt,
	}).Where(goqu.Ex{"id": plan.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update insurance plan", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("insurance plan with id %s not found", plan.ID))
	}
	return nil
}

// Delete removes an insurance plan by ID
func (a *InsurancePlanAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("insurance_plans").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete insurance plan", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("insurance plan with id %s not found", id))
	}
	return nil
}
