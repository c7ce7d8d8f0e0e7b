package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName         string     `gorm:"type:varchar(255);not null;index" json:"full_name"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender           string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	PhoneNumber      string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Address          string     `gorm:"type:text" json:"address,omitempty"`
	BloodGroup       string     `gorm:"type:varchar(5)" json:"blood_group,omitempty"`
	EmergencyContact string     `gorm:"type:varchar(100)" json:"emergency_contact,omitempty"`

	// Relationships
	User          User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assignments   []CareAssignment `gorm:"foreignKey:PatientID" json:"assignments,omitempty"`
	Appointments  []Appointment    `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	HealthMetrics []HealthMetric   `gorm:"foreignKey:PatientID" json:"health_metrics,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Age returns whole years since date of birth, -1 when unknown
func (p *PatientProfile) Age(now time.Time) int {
	if p.DateOfBirth == nil {
		return -1
	}
	years := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		years--
	}
	return years
}
