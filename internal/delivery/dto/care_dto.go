package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendCareRequestRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Message  string `json:"message" validate:"omitempty,max=500"`
}

type RespondCareRequestRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
}

type DirectAssignRequest struct {
	PatientID string `json:"patient_id" validate:"required,uuid"`
}

// Response DTOs

type CareRequestResponse struct {
	ID        int64                   `json:"id"`
	PatientID uuid.UUID               `json:"patient_id"`
	DoctorID  uuid.UUID               `json:"doctor_id"`
	Status    string                  `json:"status"`
	Message   string                  `json:"message,omitempty"`
	Patient   *PatientProfileResponse `json:"patient,omitempty"`
	Doctor    *DoctorProfileResponse  `json:"doctor,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

type CareAssignmentResponse struct {
	ID           int64                   `json:"id"`
	PatientID    uuid.UUID               `json:"patient_id"`
	DoctorID     uuid.UUID               `json:"doctor_id"`
	IsActive     bool                    `json:"is_active"`
	AssignedDate time.Time               `json:"assigned_date"`
	Patient      *PatientProfileResponse `json:"patient,omitempty"`
	Doctor       *DoctorProfileResponse  `json:"doctor,omitempty"`
}
