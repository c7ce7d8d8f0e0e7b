package repository

import (
	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepository interface {
	Create(db *gorm.DB, message *entity.ChatMessage) error
	// FindByUserID lists newest first; a nil patientID means no context filter.
	FindByUserID(db *gorm.DB, userID uuid.UUID, patientID *uuid.UUID, limit int) ([]entity.ChatMessage, error)
	// DeleteByUserID clears a user's history, optionally scoped to one patient
	// context. Returns the number of deleted rows.
	DeleteByUserID(db *gorm.DB, userID uuid.UUID, patientID *uuid.UUID) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
}

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
}
