package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=4000"`
	PatientID string `json:"patient_id" validate:"omitempty,uuid"`
}

// Response DTOs

type ChatMessageResponse struct {
	ID          int64      `json:"id"`
	MessageType string     `json:"message_type"`
	Content     string     `json:"content"`
	PatientID   *uuid.UUID `json:"patient_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ChatExchangeResponse struct {
	UserMessage *ChatMessageResponse `json:"user_message"`
	AIMessage   *ChatMessageResponse `json:"ai_message"`
}

type TrendAnalysisResponse struct {
	PatientID uuid.UUID `json:"patient_id"`
	Analysis  string    `json:"analysis"`
}
