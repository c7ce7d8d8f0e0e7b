package handler

import (
	"net/http"
	"strconv"

	"carelink/internal/delivery/http/middleware"
	"carelink/internal/usecase"
	"carelink/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type RecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
}

func NewRecordHandler(recordUsecase usecase.MedicalRecordUsecase) *RecordHandler {
	return &RecordHandler{recordUsecase: recordUsecase}
}

// Upload stores a medical record file for the caller
func (h *RecordHandler) Upload(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	in := &usecase.UploadRecordInput{
		RecordType:  r.FormValue("record_type"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Filename:    header.Filename,
		Content:     file,
	}

	record, err := h.recordUsecase.Upload(r.Context(), patientID, patientID, in)
	if err != nil {
		switch err {
		case usecase.ErrUnsupportedFile:
			response.BadRequest(w, "File type not allowed")
		default:
			response.InternalServerError(w, "Failed to upload medical record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical record uploaded", record)
}

// UploadForPatient stores a record on an assigned patient's chart
func (h *RecordHandler) UploadForPatient(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	in := &usecase.UploadRecordInput{
		RecordType:  r.FormValue("record_type"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Filename:    header.Filename,
		Content:     file,
	}

	record, err := h.recordUsecase.UploadForPatient(r.Context(), doctorID, patientID, in)
	if err != nil {
		switch err {
		case usecase.ErrNoActiveAssignment:
			response.Forbidden(w, "Patient is not under your care")
		case usecase.ErrUnsupportedFile:
			response.BadRequest(w, "File type not allowed")
		default:
			response.InternalServerError(w, "Failed to upload medical record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical record uploaded", record)
}

// List returns the caller's medical records
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	records, err := h.recordUsecase.List(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list medical records")
		return
	}

	response.Success(w, http.StatusOK, "", records)
}

// Delete removes a record and its file
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), patientID, recordID); err != nil {
		switch err {
		case usecase.ErrRecordNotFound:
			response.NotFound(w, "Medical record not found")
		case usecase.ErrNotRecordOwner:
			response.Forbidden(w, "Medical record does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete medical record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical record deleted", nil)
}
