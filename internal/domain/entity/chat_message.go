package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessageType distinguishes user-authored messages from assistant replies
type ChatMessageType string

const (
	ChatMessageTypeUser ChatMessageType = "user"
	ChatMessageTypeAI   ChatMessageType = "ai"
)

// ChatMessage is one entry in the assistant conversation log, scoped to the
// acting account and, when present, the patient context the question was
// asked about.
type ChatMessage struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	MessageType ChatMessageType `gorm:"type:varchar(20);not null" json:"message_type"`
	Content     string          `gorm:"type:text;not null" json:"content"`
	PatientID   *uuid.UUID      `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	DoctorID    *uuid.UUID      `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
