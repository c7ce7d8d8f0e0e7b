package repository

import (
	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(db *gorm.DB, id int64) (*entity.MedicalRecord, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error)
	FindRecentByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.MedicalRecord, error)
	FindByUploader(db *gorm.DB, userID uuid.UUID) ([]entity.MedicalRecord, error)
	CountByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id int64) error
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
	DeleteByUploader(db *gorm.DB, userID uuid.UUID) error
}

type HealthDataFileRepository interface {
	Create(db *gorm.DB, file *entity.HealthDataFile) error
	FindByID(db *gorm.DB, id int64) (*entity.HealthDataFile, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.HealthDataFile, error)
	Update(db *gorm.DB, file *entity.HealthDataFile) error
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
}
