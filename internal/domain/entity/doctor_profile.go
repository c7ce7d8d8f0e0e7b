package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName          string    `gorm:"type:varchar(255);not null;index" json:"full_name"`
	Specialization    string    `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	LicenseNumber     string    `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	PhoneNumber       string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Location          string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	YearsOfExperience int       `gorm:"default:0" json:"years_of_experience"`
	Qualifications    string    `gorm:"type:text" json:"qualifications,omitempty"`
	Bio               string    `gorm:"type:text" json:"bio,omitempty"`
	Availability      string    `gorm:"type:varchar(255)" json:"availability,omitempty"`
	Rating            float64   `gorm:"default:5.0" json:"rating"`

	// Relationships
	User         User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assignments  []CareAssignment `gorm:"foreignKey:DoctorID" json:"assignments,omitempty"`
	Appointments []Appointment    `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
