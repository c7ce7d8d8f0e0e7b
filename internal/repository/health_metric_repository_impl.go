package repository

import (
	"errors"
	"time"

	"carelink/internal/domain/entity"
	domainRepo "carelink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type healthMetricRepository struct{}

func NewHealthMetricRepository() domainRepo.HealthMetricRepository {
	return &healthMetricRepository{}
}

func (r *healthMetricRepository) Create(db *gorm.DB, metric *entity.HealthMetric) error {
	return db.Create(metric).Error
}

func (r *healthMetricRepository) CreateBatch(db *gorm.DB, metrics []entity.HealthMetric) error {
	if len(metrics) == 0 {
		return nil
	}
	return db.CreateInBatches(metrics, 100).Error
}

func (r *healthMetricRepository) FindByID(db *gorm.DB, id int64) (*entity.HealthMetric, error) {
	var metric entity.HealthMetric
	err := db.Where("id = ?", id).First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *healthMetricRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, metricType string, limit int) ([]entity.HealthMetric, error) {
	query := db.Where("patient_id = ?", patientID)
	if metricType != "" {
		query = query.Where("metric_type = ?", metricType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var metrics []entity.HealthMetric
	if err := query.Order("recorded_at DESC").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *healthMetricRepository) FindLatestByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.HealthMetric, error) {
	var metric entity.HealthMetric
	err := db.Where("patient_id = ?", patientID).
		Order("recorded_at DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *healthMetricRepository) FindLatestByPatientAndType(db *gorm.DB, patientID uuid.UUID, metricType string) (*entity.HealthMetric, error) {
	var metric entity.HealthMetric
	err := db.Where("patient_id = ? AND metric_type = ?", patientID, metricType).
		Order("recorded_at DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *healthMetricRepository) FindSince(db *gorm.DB, patientID uuid.UUID, since time.Time) ([]entity.HealthMetric, error) {
	var metrics []entity.HealthMetric
	err := db.Where("patient_id = ? AND recorded_at >= ?", patientID, since).
		Order("recorded_at DESC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *healthMetricRepository) Delete(db *gorm.DB, id int64) error {
	return db.Where("id = ?", id).Delete(&entity.HealthMetric{}).Error
}

func (r *healthMetricRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.HealthMetric{}).Error
}
