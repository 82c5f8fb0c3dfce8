package model

import (
	"time"

	"github.com/google/uuid"
)

// DoctorAccess is a patient's explicit, revocable delegation of read access
// to a named doctor. At most one active grant exists per (patient, doctor)
// pair; rows are hard-deleted on revoke, never soft-deleted or expired.
type DoctorAccess struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	GrantedAt time.Time `json:"granted_at" db:"granted_at"`

	Doctor *User `json:"doctor,omitempty" db:"-"`
}

// GrantAccessRequest identifies the doctor by email; the patient is the
// authenticated caller.
type GrantAccessRequest struct {
	DoctorEmail string `json:"doctor_email" binding:"required,email"`
}
