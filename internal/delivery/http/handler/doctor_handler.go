package handler

import (
	"net/http"

	"carelink/internal/delivery/http/middleware"
	"carelink/internal/usecase"
	"carelink/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{doctorUsecase: doctorUsecase}
}

// ListPatients returns patients under the caller's care
func (h *DoctorHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patients, err := h.doctorUsecase.ListAssignedPatients(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "", patients)
}

// GetPatient returns one assigned patient's full record
func (h *DoctorHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
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

	detail, err := h.doctorUsecase.GetPatientDetail(r.Context(), doctorID, patientID)
	if err != nil {
		switch err {
		case usecase.ErrNoActiveAssignment:
			response.Forbidden(w, "Patient is not under your care")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to load patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "", detail)
}

// SearchPatients finds patients by name, via ?q=
func (h *DoctorHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "Query parameter q is required")
		return
	}

	patients, err := h.doctorUsecase.SearchPatients(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to search patients")
		return
	}

	response.Success(w, http.StatusOK, "", patients)
}

// Dashboard summarizes the caller's practice
func (h *DoctorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.doctorUsecase.Dashboard(r.Context(), doctorID)
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
