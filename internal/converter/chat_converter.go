package converter

import (
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
)

// ChatMessageToResponse converts a ChatMessage entity to its DTO
func ChatMessageToResponse(message *entity.ChatMessage) *dto.ChatMessageResponse {
	if message == nil {
		return nil
	}

	return &dto.ChatMessageResponse{
		ID:          message.ID,
		MessageType: string(message.MessageType),
		Content:     message.Content,
		PatientID:   message.PatientID,
		CreatedAt:   message.CreatedAt,
	}
}

// ChatMessagesToResponses converts a slice of ChatMessage entities to DTOs
func ChatMessagesToResponses(messages []entity.ChatMessage) []dto.ChatMessageResponse {
	responses := make([]dto.ChatMessageResponse, len(messages))
	for i := range messages {
		responses[i] = *ChatMessageToResponse(&messages[i])
	}
	return responses
}
