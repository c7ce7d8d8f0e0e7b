package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carelink/internal/delivery/dto"
	"carelink/internal/delivery/http/middleware"
	"carelink/internal/usecase"
	"carelink/pkg/response"
	"carelink/pkg/validator"

	"github.com/gorilla/mux"
)

type CareHandler struct {
	careUsecase usecase.CareUsecase
	validator   *validator.CustomValidator
}

func NewCareHandler(careUsecase usecase.CareUsecase, validator *validator.CustomValidator) *CareHandler {
	return &CareHandler{
		careUsecase: careUsecase,
		validator:   validator,
	}
}

// SendRequest lets a patient ask a doctor for care
func (h *CareHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendCareRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.careUsecase.SendRequest(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDuplicateRequest:
			response.Conflict(w, "A pending request for this doctor already exists")
		case usecase.ErrAlreadyAssigned:
			response.Conflict(w, "You are already assigned to this doctor")
		default:
			response.InternalServerError(w, "Failed to send care request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Care request sent", result)
}

// RespondToRequest lets a doctor accept or reject a pending request
func (h *CareHandler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requestID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid request ID")
		return
	}

	var req dto.RespondCareRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.careUsecase.RespondToRequest(r.Context(), doctorID, requestID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Care request not found")
		case usecase.ErrRequestNotAddressed:
			response.Forbidden(w, "Care request is not addressed to you")
		case usecase.ErrRequestNotPending:
			response.Conflict(w, "Care request has already been resolved")
		case usecase.ErrInvalidDecision:
			response.BadRequest(w, "Decision must be accepted or rejected")
		default:
			response.InternalServerError(w, "Failed to respond to care request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Care request "+string(result.Status), result)
}

// DirectAssign lets a doctor take on a patient without a request
func (h *CareHandler) DirectAssign(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.DirectAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.careUsecase.DirectAssign(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAlreadyAssigned:
			response.Conflict(w, "Patient is already assigned to you")
		default:
			response.InternalServerError(w, "Failed to assign patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient assigned", result)
}

// RemoveAssignment ends the care relationship
func (h *CareHandler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	assignmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid assignment ID")
		return
	}

	if err := h.careUsecase.RemoveAssignment(r.Context(), userID, roleID, assignmentID); err != nil {
		switch err {
		case usecase.ErrAssignmentNotFound:
			response.NotFound(w, "Care assignment not found")
		case usecase.ErrNotAssignmentOwner:
			response.Forbidden(w, "Assignment does not belong to you")
		default:
			response.InternalServerError(w, "Failed to remove assignment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assignment removed", nil)
}

// ListPatientRequests returns the caller's outgoing requests
func (h *CareHandler) ListPatientRequests(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requests, err := h.careUsecase.ListPatientRequests(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list care requests")
		return
	}

	response.Success(w, http.StatusOK, "", requests)
}

// ListDoctorRequests returns requests addressed to the caller,
// optionally filtered by ?status=
func (h *CareHandler) ListDoctorRequests(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	status := r.URL.Query().Get("status")

	requests, err := h.careUsecase.ListDoctorRequests(r.Context(), doctorID, status)
	if err != nil {
		response.InternalServerError(w, "Failed to list care requests")
		return
	}

	response.Success(w, http.StatusOK, "", requests)
}
