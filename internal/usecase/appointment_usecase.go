package usecase

import (
	"context"
	"errors"
	"time"

	"carelink/internal/converter"
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
	"carelink/internal/domain/repository"
	"carelink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrNoActiveAssignment    = errors.New("no active care relationship between patient and doctor")
	ErrNotAppointmentParty   = errors.New("appointment does not involve this user")
	ErrInvalidTransition     = errors.New("status change is not allowed")
	ErrAppointmentConcluded  = errors.New("appointment has already concluded")
	ErrInvalidAppointmentDay = errors.New("invalid appointment date, use RFC 3339")
	ErrMissingCounterpart    = errors.New("doctor_id or patient_id is required")
	ErrEditNotAllowed        = errors.New("field may not be edited by this role")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, roleID int, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, userID uuid.UUID, roleID int, appointmentID int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, appointmentID int64) error
	List(ctx context.Context, userID uuid.UUID, roleID int) ([]dto.AppointmentResponse, error)
	ListUpcoming(ctx context.Context, userID uuid.UUID, roleID int) ([]dto.AppointmentResponse, error)
	ListPendingForDoctor(ctx context.Context, doctorID uuid.UUID) ([]dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	careAssignmentRepo repository.CareAssignmentRepository
	audit              service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	careAssignmentRepo repository.CareAssignmentRepository,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		careAssignmentRepo: careAssignmentRepo,
		audit:              audit,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, userID uuid.UUID, roleID int, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	when, err := time.Parse(time.RFC3339, req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidAppointmentDay
	}

	var patientID, doctorID uuid.UUID
	switch roleID {
	case entity.RoleIDPatient:
		patientID = userID
		if req.DoctorID == "" {
			return nil, ErrMissingCounterpart
		}
		doctorID, err = uuid.Parse(req.DoctorID)
		if err != nil {
			return nil, ErrDoctorNotFound
		}
	case entity.RoleIDDoctor:
		doctorID = userID
		if req.PatientID == "" {
			return nil, ErrMissingCounterpart
		}
		patientID, err = uuid.Parse(req.PatientID)
		if err != nil {
			return nil, ErrPatientNotFound
		}
	default:
		return nil, ErrMissingCounterpart
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	assignment, err := u.careAssignmentRepo.FindActiveByPair(tx, patientID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check care assignment: %+v", err)
		return nil, err
	}
	if assignment == nil {
		return nil, ErrNoActiveAssignment
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: when,
		Status:          entity.InitialAppointmentStatus(roleID),
		Reason:          req.Reason,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate, "appointment", "", map[string]interface{}{
		"patient_id": patientID.String(),
		"doctor_id":  doctorID.String(),
		"status":     appointment.Status,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, userID uuid.UUID, roleID int, appointmentID int64, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != userID && appointment.DoctorID != userID {
		return nil, ErrNotAppointmentParty
	}

	old := *appointment

	if req.Status != "" {
		if !entity.ValidAppointmentStatus(req.Status) {
			return nil, ErrInvalidTransition
		}
		next := entity.AppointmentStatus(req.Status)
		if !appointment.CanTransition(next, roleID) {
			return nil, ErrInvalidTransition
		}

		// Conditional update guards against two concurrent transitions.
		affected, err := u.appointmentRepo.UpdateStatusIfCurrent(tx, appointmentID, appointment.Status, next)
		if err != nil {
			u.log.Warnf("Failed to update appointment status: %+v", err)
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInvalidTransition
		}
		appointment.Status = next
	}

	// Reschedules and edits only apply while the appointment is open.
	if req.AppointmentDate != "" || req.Reason != "" || req.Notes != "" {
		if appointment.IsTerminal() && req.Status == "" {
			return nil, ErrAppointmentConcluded
		}

		if req.AppointmentDate != "" {
			// Reschedules are the doctor's call.
			if roleID != entity.RoleIDDoctor {
				return nil, ErrEditNotAllowed
			}
			when, err := time.Parse(time.RFC3339, req.AppointmentDate)
			if err != nil {
				return nil, ErrInvalidAppointmentDay
			}
			appointment.AppointmentDate = when
		}
		if req.Reason != "" {
			// The visit reason belongs to the patient.
			if roleID != entity.RoleIDPatient {
				return nil, ErrEditNotAllowed
			}
			appointment.Reason = req.Reason
		}
		if req.Notes != "" {
			// Notes hold the doctor's conclusions.
			if roleID != entity.RoleIDDoctor {
				return nil, ErrEditNotAllowed
			}
			appointment.Notes = req.Notes
		}

		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to update appointment: %+v", err)
			return nil, err
		}
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentUpdate, "appointment", "", old, appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, userID uuid.UUID, appointmentID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != userID && appointment.DoctorID != userID {
		return ErrNotAppointmentParty
	}

	if err := u.appointmentRepo.Delete(tx, appointmentID); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, tx, &userID, entity.AuditActionAppointmentDelete, "appointment", "", appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *appointmentUsecase) List(ctx context.Context, userID uuid.UUID, roleID int) ([]dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	var appointments []entity.Appointment
	var err error
	if roleID == entity.RoleIDDoctor {
		appointments, err = u.appointmentRepo.FindByDoctorID(db, userID)
	} else {
		appointments, err = u.appointmentRepo.FindByPatientID(db, userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) ListUpcoming(ctx context.Context, userID uuid.UUID, roleID int) ([]dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)
	now := time.Now().UTC()

	var appointments []entity.Appointment
	var err error
	if roleID == entity.RoleIDDoctor {
		appointments, err = u.appointmentRepo.FindUpcomingByDoctorID(db, userID, now)
	} else {
		appointments, err = u.appointmentRepo.FindUpcomingByPatientID(db, userID, now)
	}
	if err != nil {
		u.log.Warnf("Failed to list upcoming appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) ListPendingForDoctor(ctx context.Context, doctorID uuid.UUID) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindPendingByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list pending appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}
