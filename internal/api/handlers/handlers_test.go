package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/surgiplan/backend/internal/adapters/memory"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
)

// newSyncService seeds an in-memory store with two doctors, two hospitals,
// one insurance plan and three surgeries across March 2024, then loads it.
func newSyncService(t *testing.T) (*services.SyncService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Doctors().Save(ctx, &entities.Doctor{ID: "d1", Name: "Dr. Ana", Color: "#1abc9c"}))
	require.NoError(t, store.Doctors().Save(ctx, &entities.Doctor{ID: "d2", Name: "Dr. Bruno", Color: "#3498db"}))
	require.NoError(t, store.Hospitals().Save(ctx, &entities.Hospital{ID: "h1", Name: "Santa Casa"}))
	require.NoError(t, store.Hospitals().Save(ctx, &entities.Hospital{ID: "h2", Name: "São Lucas"}))
	require.NoError(t, store.InsurancePlans().Save(ctx, &entities.InsurancePlan{ID: "p1", Name: "Unimed"}))

	for _, s := range []*entities.Surgery{
		{
			ID:                  "s1",
			PatientName:         "Maria Souza",
			MainSurgeonID:       "d1",
			ScheduledAt:         time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local),
			HospitalID:          "h1",
			InsurancePlanID:     "p1",
			AuthorizationStatus: entities.AuthorizationApproved,
			Status:              entities.SurgeryScheduled,
			TotalValue:          1500,
		},
		{
			ID:                  "s2",
			PatientName:         "João Pereira",
			MainSurgeonID:       "d2",
			ScheduledAt:         time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local),
			HospitalID:          "h2",
			InsurancePlanID:     "p1",
			AuthorizationStatus: entities.AuthorizationPending,
			Status:              entities.SurgeryScheduled,
			TotalValue:          800,
		},
		{
			ID:                  "s3",
			PatientName:         "Maria Clara Lima",
			MainSurgeonID:       "d1",
			ParticipatingIDs:    []string{"d2"},
			ScheduledAt:         time.Date(2024, 3, 20, 11, 0, 0, 0, time.Local),
			HospitalID:          "h1",
			InsurancePlanID:     "p1",
			AuthorizationStatus: entities.AuthorizationApproved,
			Status:              entities.SurgeryPerformed,
			TotalValue:          2300,
		},
	} {
		require.NoError(t, store.Surgeries().Save(ctx, s))
	}

	svc := services.NewSyncService(
		store.Surgeries(),
		store.Doctors(),
		store.Hospitals(),
		store.InsurancePlans(),
		store.UserProfiles(),
		services.NewNotificationService(nil, time.Minute),
		nil,
	)
	require.NoError(t, svc.Load(ctx))
	return svc, store
}
