package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterPatientRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
	FullName         string `json:"full_name" validate:"required,min=2"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender           string `json:"gender" validate:"omitempty,oneof=male female other"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Address          string `json:"address" validate:"omitempty"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,max=5"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=100"`
}

type RegisterDoctorRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=6"`
	FullName          string `json:"full_name" validate:"required,min=2"`
	Specialization    string `json:"specialization" validate:"required"`
	LicenseNumber     string `json:"license_number" validate:"required"`
	PhoneNumber       string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Location          string `json:"location" validate:"omitempty"`
	YearsOfExperience int    `json:"years_of_experience" validate:"omitempty,gte=0,lte=80"`
	Qualifications    string `json:"qualifications" validate:"omitempty"`
	Bio               string `json:"bio" validate:"omitempty"`
	Availability      string `json:"availability" validate:"omitempty"`
}

type UpdatePatientProfileRequest struct {
	FullName         string `json:"full_name" validate:"omitempty,min=2"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty"`
	Gender           string `json:"gender" validate:"omitempty,oneof=male female other"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Address          string `json:"address" validate:"omitempty"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,max=5"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=100"`
}

type UpdateDoctorProfileRequest struct {
	FullName          string `json:"full_name" validate:"omitempty,min=2"`
	Specialization    string `json:"specialization" validate:"omitempty"`
	PhoneNumber       string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Location          string `json:"location" validate:"omitempty"`
	YearsOfExperience *int   `json:"years_of_experience" validate:"omitempty,gte=0,lte=80"`
	Qualifications    string `json:"qualifications" validate:"omitempty"`
	Bio               string `json:"bio" validate:"omitempty"`
	Availability      string `json:"availability" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	DoctorProfile  *DoctorProfileResponse  `json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}
