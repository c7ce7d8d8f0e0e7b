package entity

import (
	"time"

	"github.com/google/uuid"
)

// CareRequestStatus represents the status of a care request
type CareRequestStatus string

const (
	CareRequestStatusPending  CareRequestStatus = "pending"
	CareRequestStatusAccepted CareRequestStatus = "accepted"
	CareRequestStatusRejected CareRequestStatus = "rejected"
)

// CareRequest is a patient's proposal to establish a care link with a doctor.
// Status moves pending -> accepted or pending -> rejected, both terminal.
type CareRequest struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Status    CareRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message   string            `gorm:"type:text" json:"message,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (CareRequest) TableName() string {
	return "care_requests"
}

// IsPending checks if the request still awaits a doctor decision
func (r *CareRequest) IsPending() bool {
	return r.Status == CareRequestStatusPending
}

// IsTerminal checks if the request has been decided
func (r *CareRequest) IsTerminal() bool {
	return r.Status == CareRequestStatusAccepted || r.Status == CareRequestStatusRejected
}

// ValidCareRequestDecision reports whether a decision string is one a doctor
// may apply to a pending request
func ValidCareRequestDecision(decision string) bool {
	return decision == string(CareRequestStatusAccepted) || decision == string(CareRequestStatusRejected)
}
