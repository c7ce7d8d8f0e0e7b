package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is a scheduled interaction between an assigned patient/doctor
// pair. Patient-created appointments start pending; doctor-created ones start
// approved. Rejected, cancelled and completed are terminal.
type Appointment struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"not null;index" json:"appointment_date"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal checks if no further status transition is allowed
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusRejected, AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// ValidAppointmentStatus reports whether s names a known status
func ValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusRejected,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// InitialAppointmentStatus returns the status a newly created appointment
// carries: pending when a patient books, approved when a doctor books.
func InitialAppointmentStatus(creatorRoleID int) AppointmentStatus {
	if creatorRoleID == RoleIDDoctor {
		return AppointmentStatusApproved
	}
	return AppointmentStatusPending
}

// CanTransition reports whether an appointment may move from its current
// status to target when requested by the given role, per the status lattice:
//
//	pending  -> approved | rejected   (doctor)
//	pending  -> cancelled             (patient or doctor)
//	approved -> cancelled             (patient or doctor)
//	approved -> completed             (doctor)
//
// Ownership of the appointment is checked by the caller; this only encodes
// the lattice itself.
func (a *Appointment) CanTransition(target AppointmentStatus, actorRoleID int) bool {
	if a.IsTerminal() {
		return false
	}
	switch target {
	case AppointmentStatusApproved, AppointmentStatusRejected:
		return a.Status == AppointmentStatusPending && actorRoleID == RoleIDDoctor
	case AppointmentStatusCancelled:
		return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusApproved
	case AppointmentStatusCompleted:
		return a.Status == AppointmentStatusApproved && actorRoleID == RoleIDDoctor
	}
	return false
}
