package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AddHealthMetricRequest struct {
	MetricType string `json:"metric_type" validate:"required,oneof=heartbeat blood_pressure temperature blood_oxygen sugar_level sleep_hours steps calories"`
	Value      string `json:"value" validate:"required,max=50"`
	Unit       string `json:"unit" validate:"omitempty,max=20"`
	RecordedAt string `json:"recorded_at" validate:"omitempty"` // RFC 3339, defaults to now
	Notes      string `json:"notes" validate:"omitempty,max=500"`
}

// Response DTOs

type HealthMetricResponse struct {
	ID         int64     `json:"id"`
	PatientID  uuid.UUID `json:"patient_id"`
	MetricType string    `json:"metric_type"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	Notes      string    `json:"notes,omitempty"`
}

type MedicalRecordResponse struct {
	ID          int64      `json:"id"`
	PatientID   uuid.UUID  `json:"patient_id"`
	RecordType  string     `json:"record_type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	FilePath    string     `json:"file_path,omitempty"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty"`
	UploadedAt  time.Time  `json:"uploaded_at"`
}

type HealthDataFileResponse struct {
	ID           int64     `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	Filename     string    `json:"filename"`
	FileType     string    `json:"file_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Processed    bool      `json:"processed"`
	TotalRecords int       `json:"total_records"`
}

type ImportResultResponse struct {
	File            *HealthDataFileResponse `json:"file"`
	ImportedRecords int                     `json:"imported_records"`
}
