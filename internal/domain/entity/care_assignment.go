package entity

import (
	"time"

	"github.com/google/uuid"
)

// CareAssignment is the active authorization link between one patient and one
// doctor. At most one active assignment exists per pair (partial unique index).
// Removal deactivates the row; appointment and metric history stays intact.
type CareAssignment struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"`
	AssignedDate time.Time `gorm:"autoCreateTime" json:"assigned_date"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (CareAssignment) TableName() string {
	return "care_assignments"
}

// OwnedBy checks whether the given profile is one of the two parties
func (a *CareAssignment) OwnedBy(profileID uuid.UUID) bool {
	return a.PatientID == profileID || a.DoctorID == profileID
}
