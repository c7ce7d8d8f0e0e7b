package handler

import (
	"encoding/json"
	"net/http"

	"carelink/internal/delivery/dto"
	"carelink/internal/delivery/http/middleware"
	"carelink/internal/usecase"
	"carelink/pkg/response"
	"carelink/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

// Chat relays a message to the assistant and returns both sides
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exchange, err := h.chatUsecase.Chat(r.Context(), userID, roleID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrNoActiveAssignment:
			response.Forbidden(w, "Patient is not under your care")
		case usecase.ErrAssistantUnavailable:
			response.Error(w, http.StatusServiceUnavailable, "Assistant is unavailable", nil)
		default:
			response.InternalServerError(w, "Failed to chat")
		}
		return
	}

	response.Success(w, http.StatusOK, "", exchange)
}

// History returns past exchanges, filterable by ?patient_id=
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	messages, err := h.chatUsecase.History(r.Context(), userID, r.URL.Query().Get("patient_id"))
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.BadRequest(w, "Invalid patient_id")
		default:
			response.InternalServerError(w, "Failed to list chat history")
		}
		return
	}

	response.Success(w, http.StatusOK, "", messages)
}

// Analyze runs a trend analysis for an assigned patient
func (h *ChatHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	analysis, err := h.chatUsecase.Analyze(r.Context(), doctorID, patientID)
	if err != nil {
		switch err {
		case usecase.ErrNoActiveAssignment:
			response.Forbidden(w, "Patient is not under your care")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAssistantUnavailable:
			response.Error(w, http.StatusServiceUnavailable, "Assistant is unavailable", nil)
		default:
			response.InternalServerError(w, "Failed to analyze trends")
		}
		return
	}

	response.Success(w, http.StatusOK, "", analysis)
}

// ClearHistory deletes the caller's chat log, filterable by ?patient_id=
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	deleted, err := h.chatUsecase.ClearHistory(r.Context(), userID, r.URL.Query().Get("patient_id"))
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.BadRequest(w, "Invalid patient_id")
		default:
			response.InternalServerError(w, "Failed to clear chat history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Chat history cleared", map[string]int64{"deleted": deleted})
}
