package dto

import (
	"time"

	"github.com/google/uuid"
)

type PatientProfileResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	FullName         string    `json:"full_name"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	Age              int       `json:"age,omitempty"`
	Gender           string    `json:"gender,omitempty"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	Address          string    `json:"address,omitempty"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
}

type DoctorProfileResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	FullName          string    `json:"full_name"`
	Specialization    string    `json:"specialization"`
	LicenseNumber     string    `json:"license_number,omitempty"`
	PhoneNumber       string    `json:"phone_number,omitempty"`
	Location          string    `json:"location,omitempty"`
	YearsOfExperience int       `json:"years_of_experience,omitempty"`
	Qualifications    string    `json:"qualifications,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	Availability      string    `json:"availability,omitempty"`
	Rating            float64   `json:"rating"`
}

type AssignedDoctorResponse struct {
	AssignmentID int64                  `json:"assignment_id"`
	Doctor       *DoctorProfileResponse `json:"doctor"`
	AssignedDate time.Time              `json:"assigned_date"`
}

type AssignedPatientResponse struct {
	AssignmentID int64                   `json:"assignment_id"`
	Patient      *PatientProfileResponse `json:"patient"`
	AssignedDate time.Time               `json:"assigned_date"`
	LatestMetric *HealthMetricResponse   `json:"latest_metric,omitempty"`
}

type PatientDashboardResponse struct {
	Profile       *PatientProfileResponse          `json:"profile"`
	LatestMetrics map[string]*HealthMetricResponse `json:"latest_metrics"`
	RecordCount   int64                            `json:"record_count"`
	DoctorCount   int64                            `json:"doctor_count"`
}

type DoctorDashboardResponse struct {
	Profile             *DoctorProfileResponse    `json:"profile"`
	PatientCount        int64                     `json:"patient_count"`
	AppointmentCount    int64                     `json:"appointment_count"`
	PendingAppointments []AppointmentResponse     `json:"pending_appointments"`
	RecentPatients      []AssignedPatientResponse `json:"recent_patients"`
}
