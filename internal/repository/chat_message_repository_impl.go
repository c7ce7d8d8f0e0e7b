package repository

import (
	"carelink/internal/domain/entity"
	domainRepo "carelink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type chatMessageRepository struct{}

func NewChatMessageRepository() domainRepo.ChatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(db *gorm.DB, message *entity.ChatMessage) error {
	return db.Create(message).Error
}

func (r *chatMessageRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, patientID *uuid.UUID, limit int) ([]entity.ChatMessage, error) {
	query := db.Where("user_id = ?", userID)
	if patientID != nil {
		query = query.Where("patient_id = ?", *patientID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []entity.ChatMessage
	if err := query.Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatMessageRepository) DeleteByUserID(db *gorm.DB, userID uuid.UUID, patientID *uuid.UUID) (int64, error) {
	query := db.Where("user_id = ?", userID)
	if patientID != nil {
		query = query.Where("patient_id = ?", *patientID)
	}
	result := query.Delete(&entity.ChatMessage{})
	return result.RowsAffected, result.Error
}

func (r *chatMessageRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.ChatMessage{}).Error
}

func (r *chatMessageRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.ChatMessage{}).Error
}

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}
