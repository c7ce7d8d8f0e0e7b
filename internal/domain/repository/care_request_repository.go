package repository

import (
	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CareRequestRepository interface {
	Create(db *gorm.DB, request *entity.CareRequest) error
	FindByID(db *gorm.DB, id int64) (*entity.CareRequest, error)
	FindPendingByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.CareRequest, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CareRequest, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, status entity.CareRequestStatus) ([]entity.CareRequest, error)
	// UpdateStatusIfPending atomically decides a pending request. Returns
	// affected rows: 1 = decided, 0 = request was no longer pending.
	UpdateStatusIfPending(db *gorm.DB, id int64, status entity.CareRequestStatus) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
}
