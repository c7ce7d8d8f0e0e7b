package entity

import (
	"time"

	"github.com/google/uuid"
)

// Metric type constants for the known reading kinds
const (
	MetricTypeHeartbeat     = "heartbeat"
	MetricTypeBloodPressure = "blood_pressure"
	MetricTypeTemperature   = "temperature"
	MetricTypeBloodOxygen   = "blood_oxygen"
	MetricTypeSugarLevel    = "sugar_level"
	MetricTypeSleepHours    = "sleep_hours"
	MetricTypeSteps         = "steps"
	MetricTypeCalories      = "calories"
)

// HealthMetric is a single timestamped patient health reading. The value is
// stored as a unit-tagged string so compound readings like "120/80" fit.
type HealthMetric struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	MetricType string    `gorm:"type:varchar(50);not null;index" json:"metric_type"`
	Value      string    `gorm:"type:varchar(100);not null" json:"value"`
	Unit       string    `gorm:"type:varchar(20)" json:"unit,omitempty"`
	RecordedAt time.Time `gorm:"autoCreateTime;index" json:"recorded_at"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (HealthMetric) TableName() string {
	return "health_metrics"
}
