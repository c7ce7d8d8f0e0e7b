package repository

import (
	"errors"

	"carelink/internal/domain/entity"
	domainRepo "carelink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type careAssignmentRepository struct{}

func NewCareAssignmentRepository() domainRepo.CareAssignmentRepository {
	return &careAssignmentRepository{}
}

func (r *careAssignmentRepository) Create(db *gorm.DB, assignment *entity.CareAssignment) error {
	return db.Create(assignment).Error
}

func (r *careAssignmentRepository) FindByID(db *gorm.DB, id int64) (*entity.CareAssignment, error) {
	var assignment entity.CareAssignment
	err := db.Where("id = ?", id).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *careAssignmentRepository) FindActiveByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.CareAssignment, error) {
	var assignment entity.CareAssignment
	err := db.Where("patient_id = ? AND doctor_id = ? AND is_active = ?", patientID, doctorID, true).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *careAssignmentRepository) FindActiveByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CareAssignment, error) {
	var assignments []entity.CareAssignment
	err := db.Preload("Doctor").
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Order("assigned_date DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *careAssignmentRepository) FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.CareAssignment, error) {
	var assignments []entity.CareAssignment
	err := db.Preload("Patient").
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("assigned_date DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *careAssignmentRepository) FindRecentActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.CareAssignment, error) {
	var assignments []entity.CareAssignment
	err := db.Preload("Patient").
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("assigned_date DESC").
		Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *careAssignmentRepository) CountActiveByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.CareAssignment{}).
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Count(&count).Error
	return count, err
}

func (r *careAssignmentRepository) CountActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.CareAssignment{}).
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Count(&count).Error
	return count, err
}

func (r *careAssignmentRepository) Deactivate(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.CareAssignment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *careAssignmentRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.CareAssignment{}).Error
}

func (r *careAssignmentRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.CareAssignment{}).Error
}
