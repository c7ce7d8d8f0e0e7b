package repository

import (
	"time"

	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthMetricRepository interface {
	Create(db *gorm.DB, metric *entity.HealthMetric) error
	CreateBatch(db *gorm.DB, metrics []entity.HealthMetric) error
	FindByID(db *gorm.DB, id int64) (*entity.HealthMetric, error)
	// FindByPatientID lists newest first; metricType "" means all types.
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, metricType string, limit int) ([]entity.HealthMetric, error)
	FindLatestByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.HealthMetric, error)
	FindLatestByPatientAndType(db *gorm.DB, patientID uuid.UUID, metricType string) (*entity.HealthMetric, error)
	FindSince(db *gorm.DB, patientID uuid.UUID, since time.Time) ([]entity.HealthMetric, error)
	Delete(db *gorm.DB, id int64) error
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
}
