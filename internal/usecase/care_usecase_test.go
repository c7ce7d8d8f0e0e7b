package usecase

import (
	"context"
	"testing"
	"time"

	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes. Every write lands in a map so assertions can count
// exactly what a flow produced.

type fakeCareRequestRepo struct {
	requests map[int64]*entity.CareRequest
	nextID   int64
}

func newFakeCareRequestRepo() *fakeCareRequestRepo {
	return &fakeCareRequestRepo{requests: map[int64]*entity.CareRequest{}}
}

func (f *fakeCareRequestRepo) Create(db *gorm.DB, request *entity.CareRequest) error {
	f.nextID++
	request.ID = f.nextID
	cp := *request
	f.requests[request.ID] = &cp
	return nil
}

func (f *fakeCareRequestRepo) FindByID(db *gorm.DB, id int64) (*entity.CareRequest, error) {
	if r, ok := f.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCareRequestRepo) FindPendingByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.CareRequest, error) {
	for _, r := range f.requests {
		if r.PatientID == patientID && r.DoctorID == doctorID && r.Status == entity.CareRequestStatusPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCareRequestRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CareRequest, error) {
	var out []entity.CareRequest
	for _, r := range f.requests {
		if r.PatientID == patientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeCareRequestRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, status entity.CareRequestStatus) ([]entity.CareRequest, error) {
	var out []entity.CareRequest
	for _, r := range f.requests {
		if r.DoctorID == doctorID && (status == "" || r.Status == status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeCareRequestRepo) UpdateStatusIfPending(db *gorm.DB, id int64, status entity.CareRequestStatus) (int64, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != entity.CareRequestStatusPending {
		return 0, nil
	}
	r.Status = status
	return 1, nil
}

func (f *fakeCareRequestRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	for id, r := range f.requests {
		if r.PatientID == patientID {
			delete(f.requests, id)
		}
	}
	return nil
}

func (f *fakeCareRequestRepo) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	for id, r := range f.requests {
		if r.DoctorID == doctorID {
			delete(f.requests, id)
		}
	}
	return nil
}

type fakeCareAssignmentRepo struct {
	assignments map[int64]*entity.CareAssignment
	nextID      int64
}

func newFakeCareAssignmentRepo() *fakeCareAssignmentRepo {
	return &fakeCareAssignmentRepo{assignments: map[int64]*entity.CareAssignment{}}
}

func (f *fakeCareAssignmentRepo) Create(db *gorm.DB, assignment *entity.CareAssignment) error {
	f.nextID++
	assignment.ID = f.nextID
	cp := *assignment
	f.assignments[assignment.ID] = &cp
	return nil
}

func (f *fakeCareAssignmentRepo) FindByID(db *gorm.DB, id int64) (*entity.CareAssignment, error) {
	if a, ok := f.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCareAssignmentRepo) FindActiveByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.CareAssignment, error) {
	for _, a := range f.assignments {
		if a.PatientID == patientID && a.DoctorID == doctorID && a.IsActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCareAssignmentRepo) FindActiveByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CareAssignment, error) {
	var out []entity.CareAssignment
	for _, a := range f.assignments {
		if a.PatientID == patientID && a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeCareAssignmentRepo) FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.CareAssignment, error) {
	var out []entity.CareAssignment
	for _, a := range f.assignments {
		if a.DoctorID == doctorID && a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeCareAssignmentRepo) FindRecentActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.CareAssignment, error) {
	return f.FindActiveByDoctorID(db, doctorID)
}

func (f *fakeCareAssignmentRepo) CountActiveByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	out, _ := f.FindActiveByPatientID(db, patientID)
	return int64(len(out)), nil
}

func (f *fakeCareAssignmentRepo) CountActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	out, _ := f.FindActiveByDoctorID(db, doctorID)
	return int64(len(out)), nil
}

func (f *fakeCareAssignmentRepo) Deactivate(db *gorm.DB, id int64) (int64, error) {
	a, ok := f.assignments[id]
	if !ok || !a.IsActive {
		return 0, nil
	}
	a.IsActive = false
	return 1, nil
}

func (f *fakeCareAssignmentRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	for id, a := range f.assignments {
		if a.PatientID == patientID {
			delete(f.assignments, id)
		}
	}
	return nil
}

func (f *fakeCareAssignmentRepo) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	for id, a := range f.assignments {
		if a.DoctorID == doctorID {
			delete(f.assignments, id)
		}
	}
	return nil
}

func (f *fakeCareAssignmentRepo) activeCount() int {
	n := 0
	for _, a := range f.assignments {
		if a.IsActive {
			n++
		}
	}
	return n
}

type fakePatientProfileRepo struct {
	profiles map[uuid.UUID]*entity.PatientProfile
}

func newFakePatientProfileRepo() *fakePatientProfileRepo {
	return &fakePatientProfileRepo{profiles: map[uuid.UUID]*entity.PatientProfile{}}
}

func (f *fakePatientProfileRepo) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakePatientProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePatientProfileRepo) FindAll(db *gorm.DB) ([]entity.PatientProfile, error) {
	var out []entity.PatientProfile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePatientProfileRepo) SearchByName(db *gorm.DB, query string, limit int) ([]entity.PatientProfile, error) {
	return f.FindAll(db)
}

func (f *fakePatientProfileRepo) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakePatientProfileRepo) Delete(db *gorm.DB, userID uuid.UUID) error {
	delete(f.profiles, userID)
	return nil
}

type fakeDoctorProfileRepo struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func newFakeDoctorProfileRepo() *fakeDoctorProfileRepo {
	return &fakeDoctorProfileRepo{profiles: map[uuid.UUID]*entity.DoctorProfile{}}
}

func (f *fakeDoctorProfileRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeDoctorProfileRepo) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeDoctorProfileRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeDoctorProfileRepo) Delete(db *gorm.DB, userID uuid.UUID) error {
	delete(f.profiles, userID)
	return nil
}

type careFixture struct {
	usecase     CareUsecase
	requests    *fakeCareRequestRepo
	assignments *fakeCareAssignmentRepo
	patientID   uuid.UUID
	doctorID    uuid.UUID
}

func newCareFixture(t *testing.T) *careFixture {
	t.Helper()

	patients := newFakePatientProfileRepo()
	doctors := newFakeDoctorProfileRepo()
	requests := newFakeCareRequestRepo()
	assignments := newFakeCareAssignmentRepo()

	patientID := uuid.New()
	doctorID := uuid.New()
	patients.Create(nil, &entity.PatientProfile{UserID: patientID, FullName: "Pat Healy"})
	doctors.Create(nil, &entity.DoctorProfile{UserID: doctorID, FullName: "Dr. Reyes"})

	return &careFixture{
		usecase:     NewCareUsecase(testDB(t), testLogger(), patients, doctors, requests, assignments, noopAudit{}),
		requests:    requests,
		assignments: assignments,
		patientID:   patientID,
		doctorID:    doctorID,
	}
}

func TestSendRequest(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	resp, err := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{
		DoctorID: fx.doctorID.String(),
		Message:  "need a cardiologist",
	})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if resp.Status != string(entity.CareRequestStatusPending) {
		t.Errorf("status = %s, want pending", resp.Status)
	}

	// A second identical request while the first is open is rejected.
	if _, err := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{
		DoctorID: fx.doctorID.String(),
	}); err != ErrDuplicateRequest {
		t.Errorf("duplicate send: got %v, want ErrDuplicateRequest", err)
	}
}

func TestSendRequestUnknownDoctor(t *testing.T) {
	fx := newCareFixture(t)

	_, err := fx.usecase.SendRequest(context.Background(), fx.patientID, &dto.SendCareRequestRequest{
		DoctorID: uuid.NewString(),
	})
	if err != ErrDoctorNotFound {
		t.Errorf("got %v, want ErrDoctorNotFound", err)
	}
}

func TestRespondAcceptCreatesSingleAssignment(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	sent, err := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{DoctorID: fx.doctorID.String()})
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	resp, err := fx.usecase.RespondToRequest(ctx, fx.doctorID, sent.ID, &dto.RespondCareRequestRequest{Decision: "accepted"})
	if err != nil {
		t.Fatalf("RespondToRequest: %v", err)
	}
	if resp.Status != string(entity.CareRequestStatusAccepted) {
		t.Errorf("status = %s, want accepted", resp.Status)
	}
	if fx.assignments.activeCount() != 1 {
		t.Fatalf("active assignments = %d, want 1", fx.assignments.activeCount())
	}

	// A second decision on the same request loses the race and must not
	// mint another assignment.
	if _, err := fx.usecase.RespondToRequest(ctx, fx.doctorID, sent.ID, &dto.RespondCareRequestRequest{Decision: "accepted"}); err != ErrRequestNotPending {
		t.Errorf("second accept: got %v, want ErrRequestNotPending", err)
	}
	if fx.assignments.activeCount() != 1 {
		t.Errorf("active assignments after second accept = %d, want 1", fx.assignments.activeCount())
	}
}

func TestRespondRejectLeavesNoAssignment(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	sent, _ := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{DoctorID: fx.doctorID.String()})

	if _, err := fx.usecase.RespondToRequest(ctx, fx.doctorID, sent.ID, &dto.RespondCareRequestRequest{Decision: "rejected"}); err != nil {
		t.Fatalf("RespondToRequest: %v", err)
	}
	if fx.assignments.activeCount() != 0 {
		t.Errorf("active assignments = %d, want 0", fx.assignments.activeCount())
	}
}

func TestRespondWrongDoctor(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	sent, _ := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{DoctorID: fx.doctorID.String()})

	if _, err := fx.usecase.RespondToRequest(ctx, uuid.New(), sent.ID, &dto.RespondCareRequestRequest{Decision: "accepted"}); err != ErrRequestNotAddressed {
		t.Errorf("got %v, want ErrRequestNotAddressed", err)
	}
}

func TestRespondAcceptWithExistingAssignment(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	sent, _ := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{DoctorID: fx.doctorID.String()})

	fx.assignments.Create(nil, &entity.CareAssignment{
		PatientID:    fx.patientID,
		DoctorID:     fx.doctorID,
		IsActive:     true,
		AssignedDate: time.Now(),
	})

	if _, err := fx.usecase.RespondToRequest(ctx, fx.doctorID, sent.ID, &dto.RespondCareRequestRequest{Decision: "accepted"}); err != nil {
		t.Fatalf("RespondToRequest: %v", err)
	}
	if fx.assignments.activeCount() != 1 {
		t.Errorf("active assignments = %d, want 1 (no duplicate for the pair)", fx.assignments.activeCount())
	}
}

func TestDirectAssign(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	resp, err := fx.usecase.DirectAssign(ctx, fx.doctorID, &dto.DirectAssignRequest{PatientID: fx.patientID.String()})
	if err != nil {
		t.Fatalf("DirectAssign: %v", err)
	}
	if resp.DoctorID != fx.doctorID {
		t.Errorf("doctor = %s, want %s", resp.DoctorID, fx.doctorID)
	}

	if _, err := fx.usecase.DirectAssign(ctx, fx.doctorID, &dto.DirectAssignRequest{PatientID: fx.patientID.String()}); err != ErrAlreadyAssigned {
		t.Errorf("second assign: got %v, want ErrAlreadyAssigned", err)
	}
}

func TestDirectAssignResolvesOpenRequest(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	sent, _ := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{DoctorID: fx.doctorID.String()})

	if _, err := fx.usecase.DirectAssign(ctx, fx.doctorID, &dto.DirectAssignRequest{PatientID: fx.patientID.String()}); err != nil {
		t.Fatalf("DirectAssign: %v", err)
	}

	stored := fx.requests.requests[sent.ID]
	if stored.Status != entity.CareRequestStatusAccepted {
		t.Errorf("open request status = %s, want accepted", stored.Status)
	}
}

func TestRemoveAssignment(t *testing.T) {
	fx := newCareFixture(t)
	ctx := context.Background()

	sent, _ := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{DoctorID: fx.doctorID.String()})
	fx.usecase.RespondToRequest(ctx, fx.doctorID, sent.ID, &dto.RespondCareRequestRequest{Decision: "accepted"})

	assignment, _ := fx.assignments.FindActiveByPair(nil, fx.patientID, fx.doctorID)
	if assignment == nil {
		t.Fatal("expected an active assignment")
	}

	// A third party may not sever the relationship.
	if err := fx.usecase.RemoveAssignment(ctx, uuid.New(), entity.RoleIDPatient, assignment.ID); err != ErrNotAssignmentOwner {
		t.Errorf("stranger removal: got %v, want ErrNotAssignmentOwner", err)
	}

	if err := fx.usecase.RemoveAssignment(ctx, fx.patientID, entity.RoleIDPatient, assignment.ID); err != nil {
		t.Fatalf("RemoveAssignment: %v", err)
	}
	if fx.assignments.activeCount() != 0 {
		t.Errorf("active assignments = %d, want 0", fx.assignments.activeCount())
	}

	// The row is kept inactive, so a second removal reports not found.
	if err := fx.usecase.RemoveAssignment(ctx, fx.patientID, entity.RoleIDPatient, assignment.ID); err != ErrAssignmentNotFound {
		t.Errorf("second removal: got %v, want ErrAssignmentNotFound", err)
	}

	// The pair can start over afterwards.
	if _, err := fx.usecase.SendRequest(ctx, fx.patientID, &dto.SendCareRequestRequest{DoctorID: fx.doctorID.String()}); err != nil {
		t.Errorf("re-request after removal: %v", err)
	}
}
