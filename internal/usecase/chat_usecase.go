package usecase

import (
	"context"
	"errors"

	"carelink/internal/converter"
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
	"carelink/internal/domain/repository"
	"carelink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAssistantUnavailable = errors.New("assistant is unavailable")

const chatHistoryLimit = 100

type ChatUsecase interface {
	Chat(ctx context.Context, userID uuid.UUID, roleID int, req *dto.ChatRequest) (*dto.ChatExchangeResponse, error)
	History(ctx context.Context, userID uuid.UUID, patientFilter string) ([]dto.ChatMessageResponse, error)
	Analyze(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.TrendAnalysisResponse, error)
	ClearHistory(ctx context.Context, userID uuid.UUID, patientFilter string) (int64, error)
}

type chatUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	chatRepo           repository.ChatMessageRepository
	careAssignmentRepo repository.CareAssignmentRepository
	assistant          *service.AssistantService
}

func NewChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	chatRepo repository.ChatMessageRepository,
	careAssignmentRepo repository.CareAssignmentRepository,
	assistant *service.AssistantService,
) ChatUsecase {
	return &chatUsecase{
		db:                 db,
		log:                log,
		chatRepo:           chatRepo,
		careAssignmentRepo: careAssignmentRepo,
		assistant:          assistant,
	}
}

// Chat sends the message to the assistant and persists both sides of
// the exchange together.
func (u *chatUsecase) Chat(ctx context.Context, userID uuid.UUID, roleID int, req *dto.ChatRequest) (*dto.ChatExchangeResponse, error) {
	role := entity.RoleName(roleID)

	contextPatientID, doctorID, err := u.resolveContext(ctx, userID, roleID, req.PatientID)
	if err != nil {
		return nil, err
	}

	reply, err := u.assistant.Chat(ctx, role, req.Message, contextPatientID)
	if err != nil {
		u.log.Warnf("Assistant chat failed: %+v", err)
		return nil, ErrAssistantUnavailable
	}

	userMessage := &entity.ChatMessage{
		UserID:      userID,
		MessageType: entity.ChatMessageTypeUser,
		Content:     req.Message,
		PatientID:   contextPatientID,
		DoctorID:    doctorID,
	}
	aiMessage := &entity.ChatMessage{
		UserID:      userID,
		MessageType: entity.ChatMessageTypeAI,
		Content:     reply,
		PatientID:   contextPatientID,
		DoctorID:    doctorID,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.chatRepo.Create(tx, userMessage); err != nil {
		u.log.Warnf("Failed to persist user message: %+v", err)
		return nil, err
	}
	if err := u.chatRepo.Create(tx, aiMessage); err != nil {
		u.log.Warnf("Failed to persist assistant message: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.ChatExchangeResponse{
		UserMessage: converter.ChatMessageToResponse(userMessage),
		AIMessage:   converter.ChatMessageToResponse(aiMessage),
	}, nil
}

func (u *chatUsecase) History(ctx context.Context, userID uuid.UUID, patientFilter string) ([]dto.ChatMessageResponse, error) {
	var patientID *uuid.UUID
	if patientFilter != "" {
		parsed, err := uuid.Parse(patientFilter)
		if err != nil {
			return nil, ErrPatientNotFound
		}
		patientID = &parsed
	}

	messages, err := u.chatRepo.FindByUserID(u.db.WithContext(ctx), userID, patientID, chatHistoryLimit)
	if err != nil {
		u.log.Warnf("Failed to list chat history: %+v", err)
		return nil, err
	}

	return converter.ChatMessagesToResponses(messages), nil
}

// Analyze runs a trend analysis over an assigned patient's data.
func (u *chatUsecase) Analyze(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.TrendAnalysisResponse, error) {
	assignment, err := u.careAssignmentRepo.FindActiveByPair(u.db.WithContext(ctx), patientID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check care assignment: %+v", err)
		return nil, err
	}
	if assignment == nil {
		return nil, ErrNoActiveAssignment
	}

	analysis, err := u.assistant.AnalyzeTrends(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Assistant analysis failed: %+v", err)
		return nil, ErrAssistantUnavailable
	}

	// The analysis joins the conversation log like any other assistant
	// reply, best effort.
	record := &entity.ChatMessage{
		UserID:      doctorID,
		MessageType: entity.ChatMessageTypeAI,
		Content:     analysis,
		PatientID:   &patientID,
		DoctorID:    &doctorID,
	}
	if err := u.chatRepo.Create(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to persist analysis message: %+v", err)
	}

	return &dto.TrendAnalysisResponse{
		PatientID: patientID,
		Analysis:  analysis,
	}, nil
}

// ClearHistory deletes the caller's chat log, optionally scoped to one
// patient context.
func (u *chatUsecase) ClearHistory(ctx context.Context, userID uuid.UUID, patientFilter string) (int64, error) {
	var patientID *uuid.UUID
	if patientFilter != "" {
		parsed, err := uuid.Parse(patientFilter)
		if err != nil {
			return 0, ErrPatientNotFound
		}
		patientID = &parsed
	}

	deleted, err := u.chatRepo.DeleteByUserID(u.db.WithContext(ctx), userID, patientID)
	if err != nil {
		u.log.Warnf("Failed to clear chat history: %+v", err)
		return 0, err
	}
	return deleted, nil
}

// resolveContext works out which patient's data flows into the prompt.
// Patients always chat about themselves. Doctors may name one of their
// assigned patients.
func (u *chatUsecase) resolveContext(ctx context.Context, userID uuid.UUID, roleID int, patientParam string) (*uuid.UUID, *uuid.UUID, error) {
	if roleID == entity.RoleIDPatient {
		id := userID
		return &id, nil, nil
	}

	doctorID := userID
	if patientParam == "" {
		return nil, &doctorID, nil
	}

	patientID, err := uuid.Parse(patientParam)
	if err != nil {
		return nil, nil, ErrPatientNotFound
	}

	assignment, err := u.careAssignmentRepo.FindActiveByPair(u.db.WithContext(ctx), patientID, doctorID)
	if err != nil {
		return nil, nil, err
	}
	if assignment == nil {
		return nil, nil, ErrNoActiveAssignment
	}

	return &patientID, &doctorID, nil
}
