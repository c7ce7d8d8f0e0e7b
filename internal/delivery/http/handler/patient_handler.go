package handler

import (
	"net/http"

	"carelink/internal/delivery/http/middleware"
	"carelink/internal/usecase"
	"carelink/pkg/response"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{patientUsecase: patientUsecase}
}

// ListDoctors returns the caller's care team
func (h *PatientHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctors, err := h.patientUsecase.ListAssignedDoctors(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "", doctors)
}

// ListAvailableDoctors returns doctors the caller can request care from
func (h *PatientHandler) ListAvailableDoctors(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctors, err := h.patientUsecase.ListAvailableDoctors(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list available doctors")
		return
	}

	response.Success(w, http.StatusOK, "", doctors)
}

// Dashboard summarizes the caller's health
func (h *PatientHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.patientUsecase.Dashboard(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to load dashboard")
		}
		return
	}

	response.Success(w, http.StatusOK, "", dashboard)
}
