// Package memory provides an in-memory implementation of every repository
// interface. It backs service and handler tests and the zero-dependency dev
// mode; the Postgres adapters are the production store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/surgiplan/backend/internal/domain/entities"
	apperrors "github.com/surgiplan/backend/pkg/errors"
)

// Store holds all five collections behind a single mutex.
type Store struct {
	mu        sync.RWMutex
	surgeries map[string]*entities.Surgery
	doctors   map[string]*entities.Doctor
	hospitals map[string]*entities.Hospital
	plans     map[string]*entities.InsurancePlan
	profiles  map[string]*entities.UserProfile

	// Err, when set, is returned by every operation. Tests use it to
	// simulate store failures.
	Err error
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		surgeries: map[string]*entities.Surgery{},
		doctors:   map[string]*entities.Doctor{},
		hospitals: map[string]*entities.Hospital{},
		plans:     map[string]*entities.InsurancePlan{},
		profiles:  map[string]*entities.UserProfile{},
	}
}

func (m *Store) failing() error {
	return m.Err
}

// Surgeries returns the SurgeryRepository view of the store
func (m *Store) Surgeries() *SurgeryStore { return &SurgeryStore{m} }

// Doctors returns the DoctorRepository view of the store
func (m *Store) Doctors() *DoctorStore { return &DoctorStore{m} }

// Hospitals returns the HospitalRepository view of the store
func (m *Store) Hospitals() *HospitalStore { return &HospitalStore{m} }

// InsurancePlans returns the InsurancePlanRepository view of the store
func (m *Store) InsurancePlans() *InsurancePlanStore { return &InsurancePlanStore{m} }

// UserProfiles returns the UserProfileRepository view of the store
func (m *Store) UserProfiles() *UserProfileStore { return &UserProfileStore{m} }

// SurgeryStore implements repositories.SurgeryRepository
type SurgeryStore struct{ s *Store }

// List returns all surgeries ordered by scheduled time ascending
func (r *SurgeryStore) List(ctx context.Context) ([]*entities.Surgery, error) {
	if err := r.s.failing(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Surgery, 0, len(r.s.surgeries))
	for _, s := range r.s.surgeries {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

// GetByID returns a surgery by ID
func (r *SurgeryStore) GetByID(ctx context.Context, id string) (*entities.Surgery, error) {
	if err := r.s.failing(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s, ok := r.s.surgeries[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("surgery " + id + " not found")
	}
	copied := *s
	return &copied, nil
}

// Create inserts a new surgery
func (r *SurgeryStore) Create(ctx context.Context, surgery *entities.Surgery) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *surgery
	r.s.surgeries[surgery.ID] = &copied
	return nil
}

// Update replaces an existing surgery
func (r *SurgeryStore) Update(ctx context.Context, surgery *entities.Surgery) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.surgeries[surgery.ID]; !ok {
		return apperrors.NewNotFoundError("surgery " + surgery.ID + " not found")
	}
	surgery.UpdatedAt = time.Now()
	copied := *surgery
	r.s.surgeries[surgery.ID] = &copied
	return nil
}

// Save upserts by presence of ID
func (r *SurgeryStore) Save(ctx context.Context, surgery *entities.Surgery) error {
	if surgery.ID == "" {
		surgery.ID = uuid.New().String()
		surgery.CreatedAt = time.Now()
		surgery.UpdatedAt = surgery.CreatedAt
		return r.Create(ctx, surgery)
	}
	return r.Update(ctx, surgery)
}

// Delete removes a surgery by ID
func (r *SurgeryStore) Delete(ctx context.Context, id string) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.surgeries[id]; !ok {
		return apperrors.NewNotFoundError("surgery " + id + " not found")
	}
	delete(r.s.surgeries, id)
	return nil
}

// DoctorStore implements repositories.DoctorRepository
type DoctorStore struct{ s *Store }

// List returns all doctors ordered by name
func (r *DoctorStore) List(ctx context.Context) ([]*entities.Doctor, error) {
	if err := r.s.failing(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save upserts a doctor by presence of ID
func (r *DoctorStore) Save(ctx context.Context, doctor *entities.Doctor) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	copied := *doctor
	r.s.doctors[doctor.ID] = &copied
	return nil
}

// Delete removes a doctor by ID
func (r *DoctorStore) Delete(ctx context.Context, id string) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.doctors[id]; !ok {
		return apperrors.NewNotFoundError("doctor " + id + " not found")
	}
	delete(r.s.doctors, id)
	return nil
}

// HospitalStore implements repositories.HospitalRepository
type HospitalStore struct{ s *Store }

// List returns all hospitals ordered by name
func (r *HospitalStore) List(ctx context.Context) ([]*entities.Hospital, error) {
	if err := r.s.failing(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.Hospital, 0, len(r.s.hospitals))
	for _, h := range r.s.hospitals {
		copied := *h
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save upserts a hospital by presence of ID
func (r *HospitalStore) Save(ctx context.Context, hospital *entities.Hospital) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if hospital.ID == "" {
		hospital.ID = uuid.New().String()
	}
	copied := *hospital
	r.s.hospitals[hospital.ID] = &copied
	return nil
}

// Delete removes a hospital by ID
func (r *HospitalStore) Delete(ctx context.Context, id string) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.hospitals[id]; !ok {
		return apperrors.NewNotFoundError("hospital " + id + " not found")
	}
	delete(r.s.hospitals, id)
	return nil
}

// InsurancePlanStore implements repositories.InsurancePlanRepository
type InsurancePlanStore struct{ s *Store }

// List returns all insurance plans ordered by name
func (r *InsurancePlanStore) List(ctx context.Context) ([]*entities.InsurancePlan, error) {
	if err := r.s.failing(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.InsurancePlan, 0, len(r.s.plans))
	for _, p := range r.s.plans {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save upserts an insurance plan by presence of ID
func (r *InsurancePlanStore) Save(ctx context.Context, plan *entities.InsurancePlan) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	copied := *plan
	r.s.plans[plan.ID] = &copied
	return nil
}

// Delete removes an insurance plan by ID
func (r *InsurancePlanStore) Delete(ctx context.Context, id string) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.plans[id]; !ok {
		return apperrors.NewNotFoundError("insurance plan " + id + " not found")
	}
	delete(r.s.plans, id)
	return nil
}

// UserProfileStore implements repositories.UserProfileRepository
type UserProfileStore struct{ s *Store }

// List returns all profiles ordered by email
func (r *UserProfileStore) List(ctx context.Context) ([]*entities.UserProfile, error) {
	if err := r.s.failing(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entities.UserProfile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// GetByEmail returns a profile by login email
func (r *UserProfileStore) GetByEmail(ctx context.Context, email string) (*entities.UserProfile, error) {
	if err := r.s.failing(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("profile for " + email + " not found")
}

// Save upserts a profile by presence of ID
func (r *UserProfileStore) Save(ctx context.Context, profile *entities.UserProfile) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	copied := *profile
	r.s.profiles[profile.ID] = &copied
	return nil
}

// Delete removes a profile by ID
func (r *UserProfileStore) Delete(ctx context.Context, id string) error {
	if err := r.s.failing(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[id]; !ok {
		return apperrors.NewNotFoundError("profile " + id + " not found")
	}
	delete(r.s.profiles, id)
	return nil
}
