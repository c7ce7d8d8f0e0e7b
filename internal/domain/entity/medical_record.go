package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is an uploaded medical document (x-ray, lab test, report)
// owned by one patient, optionally uploaded on their behalf by a doctor.
type MedicalRecord struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	RecordType  string     `gorm:"type:varchar(50);not null" json:"record_type"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	FilePath    string     `gorm:"type:varchar(500)" json:"file_path,omitempty"`
	UploadedBy  *uuid.UUID `gorm:"type:uuid" json:"uploaded_by,omitempty"`
	UploadedAt  time.Time  `gorm:"autoCreateTime;index" json:"uploaded_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
