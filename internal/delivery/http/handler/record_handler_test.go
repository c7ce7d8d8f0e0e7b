package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"carelink/internal/delivery/dto"
	"carelink/internal/delivery/http/middleware"
	"carelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type stubRecordUsecase struct {
	uploadErr     error
	uploadForErr  error
	deleteErr     error
	gotPatientID  uuid.UUID
	gotUploaderID uuid.UUID
}

func (s *stubRecordUsecase) Upload(ctx context.Context, patientID uuid.UUID, uploaderID uuid.UUID, in *usecase.UploadRecordInput) (*dto.MedicalRecordResponse, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.gotPatientID = patientID
	s.gotUploaderID = uploaderID
	return &dto.MedicalRecordResponse{ID: 1, PatientID: patientID, Title: in.Title}, nil
}

func (s *stubRecordUsecase) UploadForPatient(ctx context.Context, doctorID, patientID uuid.UUID, in *usecase.UploadRecordInput) (*dto.MedicalRecordResponse, error) {
	if s.uploadForErr != nil {
		return nil, s.uploadForErr
	}
	s.gotPatientID = patientID
	s.gotUploaderID = doctorID
	return &dto.MedicalRecordResponse{ID: 1, PatientID: patientID, Title: in.Title}, nil
}

func (s *stubRecordUsecase) List(ctx context.Context, patientID uuid.UUID) ([]dto.MedicalRecordResponse, error) {
	return []dto.MedicalRecordResponse{}, nil
}

func (s *stubRecordUsecase) Delete(ctx context.Context, patientID uuid.UUID, recordID int64) error {
	return s.deleteErr
}

func multipartUpload(t *testing.T, target string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "scan.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("%PDF-1.4 test"))
	mw.WriteField("title", "X-Ray")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, middleware.RoleIDKey, 1)
	return req.WithContext(ctx)
}

func TestUploadForPatientCreated(t *testing.T) {
	stub := &stubRecordUsecase{}
	h := NewRecordHandler(stub)
	patientID := uuid.New()

	req := multipartUpload(t, "/doctor/patients/"+patientID.String()+"/records")
	req = mux.SetURLVars(req, map[string]string{"id": patientID.String()})
	rec := httptest.NewRecorder()
	h.UploadForPatient(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if stub.gotPatientID != patientID {
		t.Errorf("record filed under %s, want %s", stub.gotPatientID, patientID)
	}
	if stub.gotUploaderID == patientID {
		t.Error("uploader should be the doctor, not the patient")
	}
}

func TestUploadForPatientNotAssigned(t *testing.T) {
	h := NewRecordHandler(&stubRecordUsecase{uploadForErr: usecase.ErrNoActiveAssignment})
	patientID := uuid.NewString()

	req := multipartUpload(t, "/doctor/patients/"+patientID+"/records")
	req = mux.SetURLVars(req, map[string]string{"id": patientID})
	rec := httptest.NewRecorder()
	h.UploadForPatient(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestUploadForPatientInvalidID(t *testing.T) {
	h := NewRecordHandler(&stubRecordUsecase{})

	req := multipartUpload(t, "/doctor/patients/nope/records")
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rec := httptest.NewRecorder()
	h.UploadForPatient(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadUnsupportedFileType(t *testing.T) {
	h := NewRecordHandler(&stubRecordUsecase{uploadErr: usecase.ErrUnsupportedFile})

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "/patient/records"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
