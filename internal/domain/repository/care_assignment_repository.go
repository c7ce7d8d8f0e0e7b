package repository

import (
	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CareAssignmentRepository interface {
	Create(db *gorm.DB, assignment *entity.CareAssignment) error
	FindByID(db *gorm.DB, id int64) (*entity.CareAssignment, error)
	FindActiveByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.CareAssignment, error)
	FindActiveByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CareAssignment, error)
	FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.CareAssignment, error)
	FindRecentActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.CareAssignment, error)
	CountActiveByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error)
	CountActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	// Deactivate terminates an active assignment. Returns affected rows:
	// 1 = deactivated, 0 = already inactive.
	Deactivate(db *gorm.DB, id int64) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
}
