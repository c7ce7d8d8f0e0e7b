package repository

import (
	"errors"

	"carelink/internal/domain/entity"
	domainRepo "carelink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type careRequestRepository struct{}

func NewCareRequestRepository() domainRepo.CareRequestRepository {
	return &careRequestRepository{}
}

func (r *careRequestRepository) Create(db *gorm.DB, request *entity.CareRequest) error {
	return db.Create(request).Error
}

func (r *careRequestRepository) FindByID(db *gorm.DB, id int64) (*entity.CareRequest, error) {
	var request entity.CareRequest
	err := db.Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *careRequestRepository) FindPendingByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.CareRequest, error) {
	var request entity.CareRequest
	err := db.Where("patient_id = ? AND doctor_id = ? AND status = ?", patientID, doctorID, entity.CareRequestStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *careRequestRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CareRequest, error) {
	var requests []entity.CareRequest
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *careRequestRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, status entity.CareRequestStatus) ([]entity.CareRequest, error) {
	query := db.Preload("Patient").Where("doctor_id = ?", doctorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []entity.CareRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *careRequestRepository) UpdateStatusIfPending(db *gorm.DB, id int64, status entity.CareRequestStatus) (int64, error) {
	result := db.Model(&entity.CareRequest{}).
		Where("id = ? AND status = ?", id, entity.CareRequestStatusPending).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *careRequestRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.CareRequest{}).Error
}

func (r *careRequestRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.CareRequest{}).Error
}
