package entity

import (
	"time"

	"github.com/google/uuid"
)

// HealthDataFile is a raw wearables/health export (csv, json, txt) uploaded
// by a patient, with the count of metric rows imported from it.
type HealthDataFile struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Filename     string    `gorm:"type:varchar(255);not null" json:"filename"`
	FilePath     string    `gorm:"type:varchar(500);not null" json:"file_path"`
	FileType     string    `gorm:"type:varchar(50)" json:"file_type,omitempty"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	Processed    bool      `gorm:"not null;default:false" json:"processed"`
	TotalRecords int       `gorm:"not null;default:0" json:"total_records"`
}

func (HealthDataFile) TableName() string {
	return "health_data_files"
}
