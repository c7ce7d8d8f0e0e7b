package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carelink/internal/delivery/dto"
	"carelink/internal/delivery/http/middleware"
	"carelink/internal/usecase"
	"carelink/pkg/response"
	"carelink/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// stubCareUsecase returns canned results so handler status mapping can
// be exercised without a database.
type stubCareUsecase struct {
	sendErr    error
	respondErr error
	assignErr  error
	removeErr  error
}

func (s *stubCareUsecase) SendRequest(ctx context.Context, patientID uuid.UUID, req *dto.SendCareRequestRequest) (*dto.CareRequestResponse, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &dto.CareRequestResponse{ID: 1, PatientID: patientID, Status: "pending"}, nil
}

func (s *stubCareUsecase) RespondToRequest(ctx context.Context, doctorID uuid.UUID, requestID int64, req *dto.RespondCareRequestRequest) (*dto.CareRequestResponse, error) {
	if s.respondErr != nil {
		return nil, s.respondErr
	}
	return &dto.CareRequestResponse{ID: requestID, DoctorID: doctorID, Status: req.Decision}, nil
}

func (s *stubCareUsecase) DirectAssign(ctx context.Context, doctorID uuid.UUID, req *dto.DirectAssignRequest) (*dto.CareAssignmentResponse, error) {
	if s.assignErr != nil {
		return nil, s.assignErr
	}
	return &dto.CareAssignmentResponse{ID: 1, DoctorID: doctorID}, nil
}

func (s *stubCareUsecase) RemoveAssignment(ctx context.Context, userID uuid.UUID, roleID int, assignmentID int64) error {
	return s.removeErr
}

func (s *stubCareUsecase) ListPatientRequests(ctx context.Context, patientID uuid.UUID) ([]dto.CareRequestResponse, error) {
	return []dto.CareRequestResponse{}, nil
}

func (s *stubCareUsecase) ListDoctorRequests(ctx context.Context, doctorID uuid.UUID, status string) ([]dto.CareRequestResponse, error) {
	return []dto.CareRequestResponse{}, nil
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, middleware.RoleIDKey, 2)
	return req.WithContext(ctx)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return resp
}

func TestSendRequestCreated(t *testing.T) {
	h := NewCareHandler(&stubCareUsecase{}, validator.NewValidator())

	body := `{"doctor_id": "` + uuid.NewString() + `", "message": "please"}`
	rec := httptest.NewRecorder()
	h.SendRequest(rec, authedRequest(http.MethodPost, "/patient/care-requests", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if resp := decodeResponse(t, rec); !resp.Success {
		t.Error("success flag should be true")
	}
}

func TestSendRequestValidation(t *testing.T) {
	h := NewCareHandler(&stubCareUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.SendRequest(rec, authedRequest(http.MethodPost, "/patient/care-requests", `{"doctor_id": "not-a-uuid"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Validation failed" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestSendRequestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"doctor missing", usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"duplicate request", usecase.ErrDuplicateRequest, http.StatusConflict},
		{"already assigned", usecase.ErrAlreadyAssigned, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCareHandler(&stubCareUsecase{sendErr: tt.err}, validator.NewValidator())

			body := `{"doctor_id": "` + uuid.NewString() + `"}`
			rec := httptest.NewRecorder()
			h.SendRequest(rec, authedRequest(http.MethodPost, "/patient/care-requests", body))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRespondToRequestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"accepted ok", nil, http.StatusOK},
		{"not found", usecase.ErrRequestNotFound, http.StatusNotFound},
		{"not addressed", usecase.ErrRequestNotAddressed, http.StatusForbidden},
		{"already resolved", usecase.ErrRequestNotPending, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCareHandler(&stubCareUsecase{respondErr: tt.err}, validator.NewValidator())

			req := authedRequest(http.MethodPut, "/doctor/care-requests/5", `{"decision": "accepted"}`)
			req = mux.SetURLVars(req, map[string]string{"id": "5"})

			rec := httptest.NewRecorder()
			h.RespondToRequest(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRespondToRequestBadID(t *testing.T) {
	h := NewCareHandler(&stubCareUsecase{}, validator.NewValidator())

	req := authedRequest(http.MethodPut, "/doctor/care-requests/abc", `{"decision": "accepted"}`)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})

	rec := httptest.NewRecorder()
	h.RespondToRequest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRespondToRequestInvalidDecision(t *testing.T) {
	h := NewCareHandler(&stubCareUsecase{}, validator.NewValidator())

	req := authedRequest(http.MethodPut, "/doctor/care-requests/5", `{"decision": "maybe"}`)
	req = mux.SetURLVars(req, map[string]string{"id": "5"})

	rec := httptest.NewRecorder()
	h.RespondToRequest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRemoveAssignmentErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"removed", nil, http.StatusOK},
		{"not found", usecase.ErrAssignmentNotFound, http.StatusNotFound},
		{"not owner", usecase.ErrNotAssignmentOwner, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCareHandler(&stubCareUsecase{removeErr: tt.err}, validator.NewValidator())

			req := authedRequest(http.MethodDelete, "/assignments/3", "")
			req = mux.SetURLVars(req, map[string]string{"id": "3"})

			rec := httptest.NewRecorder()
			h.RemoveAssignment(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSendRequestWithoutAuthContext(t *testing.T) {
	h := NewCareHandler(&stubCareUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/patient/care-requests", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.SendRequest(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
