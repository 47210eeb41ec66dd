package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/domain/providers"
	"github.com/surgiplan/backend/internal/domain/repositories"
	"github.com/surgiplan/backend/internal/infrastructure/observability"
	"github.com/surgiplan/backend/internal/scheduling"
	apperrors "github.com/surgiplan/backend/pkg/errors"
)

// Snapshot is an immutable view of all five collections taken from one
// successful reload. Readers always see a state the store confirmed; a
// snapshot is replaced wholesale, never patched.
type Snapshot struct {
	Doctors        []*entities.Doctor        `json:"doctors"`
	Surgeries      []*entities.Surgery       `json:"surgeries"`
	Hospitals      []*entities.Hospital      `json:"hospitals"`
	InsurancePlans []*entities.InsurancePlan `json:"insurance_plans"`
	Profiles       []*entities.UserProfile   `json:"profiles"`
}

// Surgery returns the surgery with the given ID, if present
func (s *Snapshot) Surgery(id string) (*entities.Surgery, bool) {
	for _, surgery := range s.Surgeries {
		if surgery.ID == id {
			return surgery, true
		}
	}
	return nil, false
}

// Doctor returns the doctor with the given ID, if present
func (s *Snapshot) Doctor(id string) (entities.Doctor, bool) {
	for _, d := range s.Doctors {
		if d.ID == id {
			return *d, true
		}
	}
	return entities.Doctor{}, false
}

// HospitalName resolves a hospital ID to its display name. Dangling
// references report false so callers can fall back to an unknown label.
func (s *Snapshot) HospitalName(id string) (string, bool) {
	for _, h := range s.Hospitals {
		if h.ID == id {
			return h.Name, true
		}
	}
	return "", false
}

// InsurancePlanName resolves an insurance plan ID to its display name
func (s *Snapshot) InsurancePlanName(id string) (string, bool) {
	for _, p := range s.InsurancePlans {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}

// SyncService is the single write path of the agenda. Every mutation
// follows validate, write, full reload, atomic snapshot swap, one
// notification. Failures leave the snapshot untouched; there are no retries
// and no partial updates.
type SyncService struct {
	surgeries repositories.SurgeryRepository
	doctors   repositories.DoctorRepository
	hospitals repositories.HospitalRepository
	plans     repositories.InsurancePlanRepository
	profiles  repositories.UserProfileRepository
	notifier  providers.Notifier
	metrics   *observability.Metrics

	snapshot atomic.Pointer[Snapshot]
}

// NewSyncService creates a new sync service over the five collections
func NewSyncService(
	surgeries repositories.SurgeryRepository,
	doctors repositories.DoctorRepository,
	hospitals repositories.HospitalRepository,
	plans repositories.InsurancePlanRepository,
	profiles repositories.UserProfileRepository,
	notifier providers.Notifier,
	metrics *observability.Metrics,
) *SyncService {
	s := &SyncService{
		surgeries: surgeries,
		doctors:   doctors,
		hospitals: hospitals,
		plans:     plans,
		profiles:  profiles,
		notifier:  notifier,
		metrics:   metrics,
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Snapshot returns the current collection snapshot. Before the first
// successful Load it is empty.
func (s *SyncService) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Load performs a full read of all five collections and atomically replaces
// the snapshot. A failure during the initial session load is fatal for the
// session; the caller signs the user out.
func (s *SyncService) Load(ctx context.Context) error {
	start := time.Now()

	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return err
	}
	surgeries, err := s.surgeries.List(ctx)
	if err != nil {
		return err
	}
	hospitals, err := s.hospitals.List(ctx)
	if err != nil {
		return err
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return err
	}

	// Overlapping reloads race benignly: each stores a complete state and
	// the last one wins.
	s.snapshot.Store(&Snapshot{
		Doctors:        doctors,
		Surgeries:      surgeries,
		Hospitals:      hospitals,
		InsurancePlans: plans,
		Profiles:       profiles,
	})

	observability.RecordReload(ctx, s.metrics, time.Since(start))
	return nil
}

// mutate runs one write-then-reload cycle and emits exactly one
// notification for the attempt.
func (s *SyncService) mutate(ctx context.Context, operation, successMsg string, write func(context.Context) error) error {
	err := write(ctx)
	if err == nil {
		err = s.Load(ctx)
	}

	if err != nil {
		s.notifier.Notify(ctx, err.Error(), entities.NotificationError)
		observability.RecordMutation(ctx, s.metrics, operation, false)
		return err
	}

	s.notifier.Notify(ctx, successMsg, entities.NotificationSuccess)
	observability.RecordMutation(ctx, s.metrics, operation, true)
	return nil
}

func validateSurgery(surgery *entities.Surgery) error {
	if strings.TrimSpace(surgery.PatientName) == "" {
		return apperrors.NewValidationError("patient name is required")
	}
	if surgery.MainSurgeonID == "" {
		return apperrors.NewValidationError("main surgeon is required")
	}
	for _, id := range surgery.ParticipatingIDs {
		if id == surgery.MainSurgeonID {
			return apperrors.NewValidationError("main surgeon cannot also be a participating doctor")
		}
	}
	if surgery.ScheduledAt.IsZero() {
		return apperrors.NewValidationError("scheduled date is required")
	}
	if surgery.TotalValue < 0 {
		return apperrors.NewValidationError("total value cannot be negative")
	}
	for _, m := range surgery.Materials {
		if strings.TrimSpace(m.Name) == "" {
			return apperrors.NewValidationError("material name is required")
		}
		if m.Quantity <= 0 {
			return apperrors.NewValidationError("material quantity must be positive")
		}
	}

	switch surgery.AuthorizationStatus {
	case entities.AuthorizationPending, entities.AuthorizationApproved, entities.AuthorizationDenied:
	default:
		return apperrors.NewValidationError("invalid authorization status")
	}
	switch surgery.Status {
	case entities.SurgeryScheduled, entities.SurgeryPerformed, entities.SurgeryCancelled:
	default:
		return apperrors.NewValidationError("invalid surgery status")
	}
	return nil
}

// SaveSurgery validates and upserts a surgery (empty ID inserts)
func (s *SyncService) SaveSurgery(ctx context.Context, surgery *entities.Surgery) error {
	return s.mutate(ctx, "surgery.save", "surgery saved", func(ctx context.Context) error {
		if err := validateSurgery(surgery); err != nil {
			return err
		}
		return s.surgeries.Save(ctx, surgery)
	})
}

// DeleteSurgery removes a surgery
func (s *SyncService) DeleteSurgery(ctx context.Context, id string) error {
	return s.mutate(ctx, "surgery.delete", "surgery deleted", func(ctx context.Context) error {
		return s.surgeries.Delete(ctx, id)
	})
}

// RescheduleSurgery moves a surgery to a new calendar date, preserving its
// time of day. Drag-and-drop is only available in month view; the
// restriction is enforced here so no transport can bypass it. Dropping onto
// the surgery's current date is an idempotent write that still round-trips
// through the store.
func (s *SyncService) RescheduleSurgery(ctx context.Context, id string, newDate time.Time, view scheduling.ViewMode) error {
	return s.mutate(ctx, "surgery.reschedule", "surgery rescheduled", func(ctx context.Context) error {
		if view != scheduling.ViewMonth {
			return apperrors.NewValidationError("surgeries can only be rescheduled in month view")
		}

		surgery, ok := s.Snapshot().Surgery(id)
		if !ok {
			return apperrors.NewNotFoundError("surgery " + id + " not found")
		}

		moved := *surgery
		moved.ScheduledAt = scheduling.Reschedule(surgery, newDate)
		return s.surgeries.Update(ctx, &moved)
	})
}

// SaveDoctor upserts a doctor reference entity
func (s *SyncService) SaveDoctor(ctx context.Context, doctor *entities.Doctor) error {
	return s.mutate(ctx, "doctor.save", "doctor saved", func(ctx context.Context) error {
		if strings.TrimSpace(doctor.Name) == "" {
			return apperrors.NewValidationError("doctor name is required")
		}
		return s.doctors.Save(ctx, doctor)
	})
}

// DeleteDoctor removes a doctor. Surgeries referencing it keep their ID and
// degrade to an unknown display label.
func (s *SyncService) DeleteDoctor(ctx context.Context, id string) error {
	return s.mutate(ctx, "doctor.delete", "doctor deleted", func(ctx context.Context) error {
		return s.doctors.Delete(ctx, id)
	})
}

// SaveHospital upserts a hospital reference entity
func (s *SyncService) SaveHospital(ctx context.Context, hospital *entities.Hospital) error {
	return s.mutate(ctx, "hospital.save", "hospital saved", func(ctx context.Context) error {
		if strings.TrimSpace(hospital.Name) == "" {
			return apperrors.NewValidationError("hospital name is required")
		}
		return s.hospitals.Save(ctx, hospital)
	})
}

// DeleteHospital removes a hospital
func (s *SyncService) DeleteHospital(ctx context.Context, id string) error {
	return s.mutate(ctx, "hospital.delete", "hospital deleted", func(ctx context.Context) error {
		return s.hospitals.Delete(ctx, id)
	})
}

// SaveInsurancePlan upserts an insurance plan reference entity
func (s *SyncService) SaveInsurancePlan(ctx context.Context, plan *entities.InsurancePlan) error {
	return s.mutate(ctx, "insurance_plan.save", "insurance plan saved", func(ctx context.Context) error {
		if strings.TrimSpace(plan.Name) == "" {
			return apperrors.NewValidationError("insurance plan name is required")
		}
		return s.plans.Save(ctx, plan)
	})
}

// DeleteInsurancePlan removes an insurance plan
func (s *SyncService) DeleteInsurancePlan(ctx context.Context, id string) error {
	return s.mutate(ctx, "insurance_plan.delete", "insurance plan deleted", func(ctx context.Context) error {
		return s.plans.Delete(ctx, id)
	})
}
