package repository

import (
	"errors"

	"carelink/internal/domain/entity"
	domainRepo "carelink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Create(record).Error
}

func (r *medicalRecordRepository) FindByID(db *gorm.DB, id int64) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Where("patient_id = ?", patientID).
		Order("uploaded_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindRecentByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Where("patient_id = ?", patientID).
		Order("uploaded_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindByUploader(db *gorm.DB, uploaderID uuid.UUID) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Where("uploaded_by = ?", uploaderID).
		Order("uploaded_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) CountByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.MedicalRecord{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count, err
}

func (r *medicalRecordRepository) Delete(db *gorm.DB, id int64) error {
	return db.Where("id = ?", id).Delete(&entity.MedicalRecord{}).Error
}

func (r *medicalRecordRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.MedicalRecord{}).Error
}

func (r *medicalRecordRepository) DeleteByUploader(db *gorm.DB, uploaderID uuid.UUID) error {
	return db.Where("uploaded_by = ?", uploaderID).Delete(&entity.MedicalRecord{}).Error
}

type healthDataFileRepository struct{}

func NewHealthDataFileRepository() domainRepo.HealthDataFileRepository {
	return &healthDataFileRepository{}
}

func (r *healthDataFileRepository) Create(db *gorm.DB, file *entity.HealthDataFile) error {
	return db.Create(file).Error
}

func (r *healthDataFileRepository) FindByID(db *gorm.DB, id int64) (*entity.HealthDataFile, error) {
	var file entity.HealthDataFile
	err := db.Where("id = ?", id).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *healthDataFileRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.HealthDataFile, error) {
	var files []entity.HealthDataFile
	err := db.Where("patient_id = ?", patientID).
		Order("uploaded_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *healthDataFileRepository) Update(db *gorm.DB, file *entity.HealthDataFile) error {
	return db.Save(file).Error
}

func (r *healthDataFileRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.HealthDataFile{}).Error
}
