package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carelink/internal/delivery/dto"
	"carelink/internal/delivery/http/middleware"
	"carelink/internal/service"
	"carelink/internal/usecase"
	"carelink/pkg/response"
	"carelink/pkg/validator"

	"github.com/gorilla/mux"
)

// maxUploadMemory bounds the multipart parse buffer, not the file size.
const maxUploadMemory = 10 << 20

type HealthHandler struct {
	metricUsecase usecase.HealthMetricUsecase
	validator     *validator.CustomValidator
}

func NewHealthHandler(metricUsecase usecase.HealthMetricUsecase, validator *validator.CustomValidator) *HealthHandler {
	return &HealthHandler{
		metricUsecase: metricUsecase,
		validator:     validator,
	}
}

// ListMetrics returns the caller's metrics, filterable by ?type= and ?limit=
func (h *HealthHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	metricType := r.URL.Query().Get("type")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "Invalid limit")
			return
		}
		limit = parsed
	}

	metrics, err := h.metricUsecase.List(r.Context(), patientID, metricType, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list health metrics")
		return
	}

	response.Success(w, http.StatusOK, "", metrics)
}

// AddMetric records a manual reading
func (h *HealthHandler) AddMetric(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AddHealthMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	metric, err := h.metricUsecase.Add(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid recorded_at, use RFC 3339")
		default:
			response.InternalServerError(w, "Failed to add health metric")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health metric added", metric)
}

// DeleteMetric removes one reading
func (h *HealthHandler) DeleteMetric(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	metricID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid metric ID")
		return
	}

	if err := h.metricUsecase.Delete(r.Context(), patientID, metricID); err != nil {
		switch err {
		case usecase.ErrMetricNotFound:
			response.NotFound(w, "Health metric not found")
		case usecase.ErrNotMetricOwner:
			response.Forbidden(w, "Health metric does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete health metric")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health metric deleted", nil)
}

// ImportFile ingests a CSV/JSON wearable export
func (h *HealthHandler) ImportFile(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.metricUsecase.ImportFile(r.Context(), patientID, header.Filename, file)
	if err != nil {
		switch err {
		case usecase.ErrUnsupportedFile:
			response.BadRequest(w, "File type not allowed")
		case service.ErrUndecodableFile:
			response.BadRequest(w, "File could not be decoded as health data")
		default:
			response.InternalServerError(w, "Failed to import health data")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health data imported", result)
}

// ListFiles returns previously imported exports
func (h *HealthHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	files, err := h.metricUsecase.ListFiles(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list health data files")
		return
	}

	response.Success(w, http.StatusOK, "", files)
}
