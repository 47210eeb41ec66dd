package entities

import (
	"time"
)

// UserProfile represents a medical representative account. Each profile is
// linked 1:1 to a doctor; the display name comes from the linked doctor.
type UserProfile struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DoctorID     string    `json:"doctor_id" db:"doctor_id"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName resolves the profile's display name from the linked doctor.
// A dangling doctor reference falls back to the profile email.
func (p *UserProfile) DisplayName(lookup func(string) (Doctor, bool)) string {
	if doc, ok := lookup(p.DoctorID); ok {
		return doc.Name
	}
	return p.Email
}
