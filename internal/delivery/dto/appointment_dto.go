package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" validate:"omitempty,uuid"`
	DoctorID        string `json:"doctor_id" validate:"omitempty,uuid"`
	AppointmentDate string `json:"appointment_date" validate:"required"` // RFC 3339
	Reason          string `json:"reason" validate:"omitempty,max=500"`
}

type UpdateAppointmentRequest struct {
	Status          string `json:"status" validate:"omitempty,oneof=pending approved rejected cancelled completed"`
	AppointmentDate string `json:"appointment_date" validate:"omitempty"`
	Reason          string `json:"reason" validate:"omitempty,max=500"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int64                   `json:"id"`
	PatientID       uuid.UUID               `json:"patient_id"`
	DoctorID        uuid.UUID               `json:"doctor_id"`
	AppointmentDate time.Time               `json:"appointment_date"`
	Status          string                  `json:"status"`
	Reason          string                  `json:"reason,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	Patient         *PatientProfileResponse `json:"patient,omitempty"`
	Doctor          *DoctorProfileResponse  `json:"doctor,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}
