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

type fakeAppointmentRepo struct {
	appointments map[int64]*entity.Appointment
	nextID       int64
	// forceStale makes conditional status updates report zero affected
	// rows, simulating a lost race against a concurrent transition.
	forceStale bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[int64]*entity.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	f.nextID++
	appointment.ID = f.nextID
	cp := *appointment
	f.appointments[appointment.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindUpcomingByPatientID(db *gorm.DB, patientID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && a.AppointmentDate.After(from) && !a.IsTerminal() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindUpcomingByDoctorID(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate.After(from) && !a.IsTerminal() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindPendingByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Status == entity.AppointmentStatusPending {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	out, _ := f.FindByDoctorID(db, doctorID)
	return int64(len(out)), nil
}

func (f *fakeAppointmentRepo) UpdateStatusIfCurrent(db *gorm.DB, id int64, current, next entity.AppointmentStatus) (int64, error) {
	if f.forceStale {
		return 0, nil
	}
	a, ok := f.appointments[id]
	if !ok || a.Status != current {
		return 0, nil
	}
	a.Status = next
	return 1, nil
}

func (f *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	cp := *appointment
	f.appointments[appointment.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Delete(db *gorm.DB, id int64) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	for id, a := range f.appointments {
		if a.PatientID == patientID {
			delete(f.appointments, id)
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	for id, a := range f.appointments {
		if a.DoctorID == doctorID {
			delete(f.appointments, id)
		}
	}
	return nil
}

type appointmentFixture struct {
	usecase      AppointmentUsecase
	appointments *fakeAppointmentRepo
	assignments  *fakeCareAssignmentRepo
	patientID    uuid.UUID
	doctorID     uuid.UUID
}

// newAppointmentFixture wires the usecase with an established care
// relationship between one patient and one doctor.
func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	appointments := newFakeAppointmentRepo()
	assignments := newFakeCareAssignmentRepo()

	patientID := uuid.New()
	doctorID := uuid.New()
	assignments.Create(nil, &entity.CareAssignment{
		PatientID:    patientID,
		DoctorID:     doctorID,
		IsActive:     true,
		AssignedDate: time.Now(),
	})

	return &appointmentFixture{
		usecase:      NewAppointmentUsecase(testDB(t), testLogger(), appointments, assignments, noopAudit{}),
		appointments: appointments,
		assignments:  assignments,
		patientID:    patientID,
		doctorID:     doctorID,
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).UTC().Format(time.RFC3339)
}

func TestCreateAppointmentRequiresAssignment(t *testing.T) {
	fx := newAppointmentFixture(t)

	// A doctor outside the care relationship cannot book.
	_, err := fx.usecase.Create(context.Background(), uuid.New(), entity.RoleIDDoctor, &dto.CreateAppointmentRequest{
		PatientID:       fx.patientID.String(),
		AppointmentDate: futureDate(),
	})
	if err != ErrNoActiveAssignment {
		t.Errorf("got %v, want ErrNoActiveAssignment", err)
	}
}

func TestCreateAppointmentInitialStatus(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	byPatient, err := fx.usecase.Create(ctx, fx.patientID, entity.RoleIDPatient, &dto.CreateAppointmentRequest{
		DoctorID:        fx.doctorID.String(),
		AppointmentDate: futureDate(),
		Reason:          "checkup",
	})
	if err != nil {
		t.Fatalf("patient create: %v", err)
	}
	if byPatient.Status != string(entity.AppointmentStatusPending) {
		t.Errorf("patient-created status = %s, want pending", byPatient.Status)
	}

	byDoctor, err := fx.usecase.Create(ctx, fx.doctorID, entity.RoleIDDoctor, &dto.CreateAppointmentRequest{
		PatientID:       fx.patientID.String(),
		AppointmentDate: futureDate(),
	})
	if err != nil {
		t.Fatalf("doctor create: %v", err)
	}
	if byDoctor.Status != string(entity.AppointmentStatusApproved) {
		t.Errorf("doctor-created status = %s, want approved", byDoctor.Status)
	}
}

func TestCreateAppointmentMissingCounterpart(t *testing.T) {
	fx := newAppointmentFixture(t)

	_, err := fx.usecase.Create(context.Background(), fx.patientID, entity.RoleIDPatient, &dto.CreateAppointmentRequest{
		AppointmentDate: futureDate(),
	})
	if err != ErrMissingCounterpart {
		t.Errorf("got %v, want ErrMissingCounterpart", err)
	}
}

func TestAppointmentApprovalFlow(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := fx.usecase.Create(ctx, fx.patientID, entity.RoleIDPatient, &dto.CreateAppointmentRequest{
		DoctorID:        fx.doctorID.String(),
		AppointmentDate: futureDate(),
		Reason:          "chest pain",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The patient cannot approve their own booking.
	if _, err := fx.usecase.Update(ctx, fx.patientID, entity.RoleIDPatient, created.ID, &dto.UpdateAppointmentRequest{Status: "approved"}); err != ErrInvalidTransition {
		t.Errorf("patient approve: got %v, want ErrInvalidTransition", err)
	}

	approved, err := fx.usecase.Update(ctx, fx.doctorID, entity.RoleIDDoctor, created.ID, &dto.UpdateAppointmentRequest{Status: "approved"})
	if err != nil {
		t.Fatalf("doctor approve: %v", err)
	}
	if approved.Status != string(entity.AppointmentStatusApproved) {
		t.Errorf("status = %s, want approved", approved.Status)
	}

	completed, err := fx.usecase.Update(ctx, fx.doctorID, entity.RoleIDDoctor, created.ID, &dto.UpdateAppointmentRequest{
		Status: "completed",
		Notes:  "follow up in six months",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != string(entity.AppointmentStatusCompleted) {
		t.Errorf("status = %s, want completed", completed.Status)
	}

	// Completed is terminal.
	if _, err := fx.usecase.Update(ctx, fx.doctorID, entity.RoleIDDoctor, created.ID, &dto.UpdateAppointmentRequest{Status: "cancelled"}); err != ErrInvalidTransition {
		t.Errorf("transition out of completed: got %v, want ErrInvalidTransition", err)
	}
}

func TestAppointmentConcurrentTransitionLoses(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := fx.usecase.Create(ctx, fx.patientID, entity.RoleIDPatient, &dto.CreateAppointmentRequest{
		DoctorID:        fx.doctorID.String(),
		AppointmentDate: futureDate(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fx.appointments.forceStale = true
	if _, err := fx.usecase.Update(ctx, fx.doctorID, entity.RoleIDDoctor, created.ID, &dto.UpdateAppointmentRequest{Status: "approved"}); err != ErrInvalidTransition {
		t.Errorf("stale transition: got %v, want ErrInvalidTransition", err)
	}
}

func TestAppointmentFieldEditRoles(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := fx.usecase.Create(ctx, fx.patientID, entity.RoleIDPatient, &dto.CreateAppointmentRequest{
		DoctorID:        fx.doctorID.String(),
		AppointmentDate: futureDate(),
		Reason:          "checkup",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Patients own the reason, doctors own the schedule and notes.
	if _, err := fx.usecase.Update(ctx, fx.patientID, entity.RoleIDPatient, created.ID, &dto.UpdateAppointmentRequest{Notes: "self-diagnosis"}); err != ErrEditNotAllowed {
		t.Errorf("patient notes edit: got %v, want ErrEditNotAllowed", err)
	}
	if _, err := fx.usecase.Update(ctx, fx.patientID, entity.RoleIDPatient, created.ID, &dto.UpdateAppointmentRequest{AppointmentDate: futureDate()}); err != ErrEditNotAllowed {
		t.Errorf("patient reschedule: got %v, want ErrEditNotAllowed", err)
	}
	if _, err := fx.usecase.Update(ctx, fx.doctorID, entity.RoleIDDoctor, created.ID, &dto.UpdateAppointmentRequest{Reason: "rewritten"}); err != ErrEditNotAllowed {
		t.Errorf("doctor reason edit: got %v, want ErrEditNotAllowed", err)
	}

	updated, err := fx.usecase.Update(ctx, fx.patientID, entity.RoleIDPatient, created.ID, &dto.UpdateAppointmentRequest{Reason: "worsening chest pain"})
	if err != nil {
		t.Fatalf("patient reason edit: %v", err)
	}
	if updated.Reason != "worsening chest pain" {
		t.Errorf("reason = %q", updated.Reason)
	}
}

func TestAppointmentDeleteByParty(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := fx.usecase.Create(ctx, fx.patientID, entity.RoleIDPatient, &dto.CreateAppointmentRequest{
		DoctorID:        fx.doctorID.String(),
		AppointmentDate: futureDate(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := fx.usecase.Delete(ctx, uuid.New(), created.ID); err != ErrNotAppointmentParty {
		t.Errorf("stranger delete: got %v, want ErrNotAppointmentParty", err)
	}
	if err := fx.usecase.Delete(ctx, fx.patientID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := fx.usecase.Delete(ctx, fx.patientID, created.ID); err != ErrAppointmentNotFound {
		t.Errorf("second delete: got %v, want ErrAppointmentNotFound", err)
	}
}
