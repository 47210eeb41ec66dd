package entities

import (
	"time"
)

// AuthorizationStatus represents the insurance authorization state of a surgery
type AuthorizationStatus string

const (
	AuthorizationPending  AuthorizationStatus = "Pendente"
	AuthorizationApproved AuthorizationStatus = "Liberado"
	AuthorizationDenied   AuthorizationStatus = "Negado"
)

// SurgeryStatus represents the lifecycle state of a surgery
type SurgeryStatus string

const (
	SurgeryScheduled SurgeryStatus = "Agendada"
	SurgeryPerformed SurgeryStatus = "Realizada"
	SurgeryCancelled SurgeryStatus = "Cancelada"
)

// Material represents a surgical material line item. Materials are owned by
// their surgery and have no independent identity.
type Material struct {
	Name     string `json:"name" db:"-"`
	Quantity int    `json:"quantity" db:"-"`
}

// Surgery represents a scheduled surgical procedure
type Surgery struct {
	ID                  string              `json:"id" db:"id"`
	PatientName         string              `json:"patient_name" db:"patient_name"`
	MainSurgeonID       string              `json:"main_surgeon_id" db:"main_surgeon_id"`
	ParticipatingIDs    []string            `json:"participating_ids" db:"-"`
	ScheduledAt         time.Time           `json:"scheduled_at" db:"scheduled_at"`
	HospitalID          string              `json:"hospital_id" db:"hospital_id"`
	InsurancePlanID     string              `json:"insurance_plan_id" db:"insurance_plan_id"`
	AuthorizationStatus AuthorizationStatus `json:"authorization_status" db:"authorization_status"`
	Status              SurgeryStatus       `json:"status" db:"status"`
	TotalValue          float64             `json:"total_value" db:"total_value"`
	Materials           []Material          `json:"materials" db:"-"`
	Notes               string              `json:"notes" db:"notes"`
	CreatedAt           time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" db:"updated_at"`
}

// InvolvesDoctor reports whether the doctor is the main surgeon or a
// participating doctor on this surgery.
func (s *Surgery) InvolvesDoctor(doctorID string) bool {
	if s.MainSurgeonID == doctorID {
		return true
	}
	for _, id := range s.ParticipatingIDs {
		if id == doctorID {
			return true
		}
	}
	return false
}
