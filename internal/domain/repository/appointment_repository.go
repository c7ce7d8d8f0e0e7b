package repository

import (
	"time"

	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	// FindByPatientID and FindByDoctorID list all appointments newest first.
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	// Upcoming listings cover future, non-terminal appointments soonest first.
	FindUpcomingByPatientID(db *gorm.DB, patientID uuid.UUID, from time.Time) ([]entity.Appointment, error)
	FindUpcomingByDoctorID(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.Appointment, error)
	FindPendingByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	// UpdateStatusIfCurrent applies a transition only when the row still holds
	// the expected current status. Returns affected rows: 1 = transitioned,
	// 0 = a concurrent mutation won.
	UpdateStatusIfCurrent(db *gorm.DB, id int64, current, next entity.AppointmentStatus) (int64, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id int64) error
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
}
