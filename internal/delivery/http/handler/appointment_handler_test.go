package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carelink/internal/delivery/dto"
	"carelink/internal/usecase"
	"carelink/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type stubAppointmentUsecase struct {
	createErr error
	updateErr error
	deleteErr error
}

func (s *stubAppointmentUsecase) Create(ctx context.Context, userID uuid.UUID, roleID int, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.AppointmentResponse{ID: 1, Status: "pending"}, nil
}

func (s *stubAppointmentUsecase) Update(ctx context.Context, userID uuid.UUID, roleID int, appointmentID int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &dto.AppointmentResponse{ID: appointmentID, Status: req.Status}, nil
}

func (s *stubAppointmentUsecase) Delete(ctx context.Context, userID uuid.UUID, appointmentID int64) error {
	return s.deleteErr
}

func (s *stubAppointmentUsecase) List(ctx context.Context, userID uuid.UUID, roleID int) ([]dto.AppointmentResponse, error) {
	return []dto.AppointmentResponse{}, nil
}

func (s *stubAppointmentUsecase) ListUpcoming(ctx context.Context, userID uuid.UUID, roleID int) ([]dto.AppointmentResponse, error) {
	return []dto.AppointmentResponse{}, nil
}

func (s *stubAppointmentUsecase) ListPendingForDoctor(ctx context.Context, doctorID uuid.UUID) ([]dto.AppointmentResponse, error) {
	return []dto.AppointmentResponse{}, nil
}

func TestCreateAppointment(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	body := `{"doctor_id": "` + uuid.NewString() + `", "appointment_date": "` +
		time.Now().Add(48*time.Hour).Format(time.RFC3339) + `", "reason": "checkup"}`

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/appointments", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateAppointmentMissingDate(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/appointments", `{"doctor_id": "`+uuid.NewString()+`"}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateAppointmentErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad date", usecase.ErrInvalidAppointmentDay, http.StatusBadRequest},
		{"no counterpart", usecase.ErrMissingCounterpart, http.StatusBadRequest},
		{"doctor missing", usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"no assignment", usecase.ErrNoActiveAssignment, http.StatusForbidden},
	}

	body := `{"doctor_id": "` + uuid.NewString() + `", "appointment_date": "2025-06-01T10:00:00Z"}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{createErr: tt.err}, validator.NewValidator())

			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest(http.MethodPost, "/appointments", body))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUpdateAppointmentErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"updated", nil, http.StatusOK},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"not a party", usecase.ErrNotAppointmentParty, http.StatusForbidden},
		{"bad transition", usecase.ErrInvalidTransition, http.StatusConflict},
		{"concluded", usecase.ErrAppointmentConcluded, http.StatusConflict},
		{"wrong role for field", usecase.ErrEditNotAllowed, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{updateErr: tt.err}, validator.NewValidator())

			req := authedRequest(http.MethodPut, "/appointments/7", `{"status": "cancelled"}`)
			req = mux.SetURLVars(req, map[string]string{"id": "7"})

			rec := httptest.NewRecorder()
			h.Update(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUpdateAppointmentRejectsUnknownStatus(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	req := authedRequest(http.MethodPut, "/appointments/7", `{"status": "postponed"}`)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteAppointment(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	req := authedRequest(http.MethodDelete, "/appointments/7", "")
	req = mux.SetURLVars(req, map[string]string{"id": "7"})

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestListAppointments(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/appointments", ""))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
