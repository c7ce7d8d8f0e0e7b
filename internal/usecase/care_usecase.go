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
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDuplicateRequest    = errors.New("a pending request for this doctor already exists")
	ErrAlreadyAssigned     = errors.New("patient is already assigned to this doctor")
	ErrRequestNotFound     = errors.New("care request not found")
	ErrRequestNotPending   = errors.New("care request has already been resolved")
	ErrInvalidDecision     = errors.New("decision must be accepted or rejected")
	ErrAssignmentNotFound  = errors.New("care assignment not found")
	ErrNotAssignmentOwner  = errors.New("assignment does not belong to this user")
	ErrRequestNotAddressed = errors.New("care request is not addressed to this doctor")
)

type CareUsecase interface {
	SendRequest(ctx context.Context, patientID uuid.UUID, req *dto.SendCareRequestRequest) (*dto.CareRequestResponse, error)
	RespondToRequest(ctx context.Context, doctorID uuid.UUID, requestID int64, req *dto.RespondCareRequestRequest) (*dto.CareRequestResponse, error)
	DirectAssign(ctx context.Context, doctorID uuid.UUID, req *dto.DirectAssignRequest) (*dto.CareAssignmentResponse, error)
	RemoveAssignment(ctx context.Context, userID uuid.UUID, roleID int, assignmentID int64) error
	ListPatientRequests(ctx context.Context, patientID uuid.UUID) ([]dto.CareRequestResponse, error)
	ListDoctorRequests(ctx context.Context, doctorID uuid.UUID, status string) ([]dto.CareRequestResponse, error)
}

type careUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	careRequestRepo    repository.CareRequestRepository
	careAssignmentRepo repository.CareAssignmentRepository
	audit              service.AuditService
}

func NewCareUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	careRequestRepo repository.CareRequestRepository,
	careAssignmentRepo repository.CareAssignmentRepository,
	audit service.AuditService,
) CareUsecase {
	return &careUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		careRequestRepo:    careRequestRepo,
		careAssignmentRepo: careAssignmentRepo,
		audit:              audit,
	}
}

func (u *careUsecase) SendRequest(ctx context.Context, patientID uuid.UUID, req *dto.SendCareRequestRequest) (*dto.CareRequestResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	assignment, err := u.careAssignmentRepo.FindActiveByPair(tx, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	if assignment != nil {
		return nil, ErrAlreadyAssigned
	}

	pending, err := u.careRequestRepo.FindPendingByPair(tx, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrDuplicateRequest
	}

	request := &entity.CareRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
		Status:    entity.CareRequestStatusPending,
		Message:   req.Message,
	}

	if err := u.careRequestRepo.Create(tx, request); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create care request: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, tx, &patientID, entity.AuditActionCareRequestSend, "care_request", "", map[string]interface{}{
		"doctor_id": doctorID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	request.Doctor = *doctor
	return converter.CareRequestToResponse(request), nil
}

func (u *careUsecase) RespondToRequest(ctx context.Context, doctorID uuid.UUID, requestID int64, req *dto.RespondCareRequestRequest) (*dto.CareRequestResponse, error) {
	if !entity.ValidCareRequestDecision(req.Decision) {
		return nil, ErrInvalidDecision
	}
	decision := entity.CareRequestStatus(req.Decision)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.careRequestRepo.FindByID(tx, requestID)
	if err != nil {
		u.log.Warnf("Failed to find care request: %+v", err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.DoctorID != doctorID {
		return nil, ErrRequestNotAddressed
	}

	// Conditional update guards against two concurrent decisions.
	affected, err := u.careRequestRepo.UpdateStatusIfPending(tx, requestID, decision)
	if err != nil {
		u.log.Warnf("Failed to update care request status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRequestNotPending
	}
	request.Status = decision

	auditAction := entity.AuditActionCareRequestReject
	if decision == entity.CareRequestStatusAccepted {
		auditAction = entity.AuditActionCareRequestAccept

		existing, err := u.careAssignmentRepo.FindActiveByPair(tx, request.PatientID, doctorID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			assignment := &entity.CareAssignment{
				PatientID:    request.PatientID,
				DoctorID:     doctorID,
				IsActive:     true,
				AssignedDate: time.Now().UTC(),
			}
			if err := u.careAssignmentRepo.Create(tx, assignment); err != nil {
				u.log.Warnf("Failed to create care assignment: %+v", err)
				return nil, err
			}

			u.audit.LogCreate(ctx, tx, &doctorID, entity.AuditActionAssignmentCreate, "care_assignment", "", map[string]interface{}{
				"patient_id": request.PatientID.String(),
			})
		}
	}

	u.audit.LogUpdate(ctx, tx, &doctorID, auditAction, "care_request", "", entity.CareRequestStatusPending, decision)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CareRequestToResponse(request), nil
}

func (u *careUsecase) DirectAssign(ctx context.Context, doctorID uuid.UUID, req *dto.DirectAssignRequest) (*dto.CareAssignmentResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientProfileRepo.FindByUserID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	existing, err := u.careAssignmentRepo.FindActiveByPair(tx, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyAssigned
	}

	assignment := &entity.CareAssignment{
		PatientID:    patientID,
		DoctorID:     doctorID,
		IsActive:     true,
		AssignedDate: time.Now().UTC(),
	}

	if err := u.careAssignmentRepo.Create(tx, assignment); err != nil {
		if isDuplicateKeyError(err, "care_assignments") {
			return nil, ErrAlreadyAssigned
		}
		u.log.Warnf("Failed to create care assignment: %+v", err)
		return nil, err
	}

	// An open request between the pair is considered resolved.
	if pending, err := u.careRequestRepo.FindPendingByPair(tx, patientID, doctorID); err == nil && pending != nil {
		if _, err := u.careRequestRepo.UpdateStatusIfPending(tx, pending.ID, entity.CareRequestStatusAccepted); err != nil {
			u.log.Warnf("Failed to resolve pending request during direct assign: %+v", err)
		}
	}

	u.audit.LogCreate(ctx, tx, &doctorID, entity.AuditActionAssignmentCreate, "care_assignment", "", map[string]interface{}{
		"patient_id": patientID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	assignment.Patient = *patient
	return converter.CareAssignmentToResponse(assignment), nil
}

// RemoveAssignment deactivates the care relationship. The row is kept
// for history, and existing appointments stay untouched.
func (u *careUsecase) RemoveAssignment(ctx context.Context, userID uuid.UUID, roleID int, assignmentID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	assignment, err := u.careAssignmentRepo.FindByID(tx, assignmentID)
	if err != nil {
		u.log.Warnf("Failed to find care assignment: %+v", err)
		return err
	}
	if assignment == nil || !assignment.IsActive {
		return ErrAssignmentNotFound
	}
	if !assignment.OwnedBy(userID) {
		return ErrNotAssignmentOwner
	}

	affected, err := u.careAssignmentRepo.Deactivate(tx, assignmentID)
	if err != nil {
		u.log.Warnf("Failed to deactivate care assignment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}

	u.audit.LogDelete(ctx, tx, &userID, entity.AuditActionAssignmentRemove, "care_assignment", "", map[string]interface{}{
		"patient_id": assignment.PatientID.String(),
		"doctor_id":  assignment.DoctorID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *careUsecase) ListPatientRequests(ctx context.Context, patientID uuid.UUID) ([]dto.CareRequestResponse, error) {
	db := u.db.WithContext(ctx)

	requests, err := u.careRequestRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list care requests: %+v", err)
		return nil, err
	}

	return converter.CareRequestsToResponses(requests), nil
}

func (u *careUsecase) ListDoctorRequests(ctx context.Context, doctorID uuid.UUID, status string) ([]dto.CareRequestResponse, error) {
	db := u.db.WithContext(ctx)

	requests, err := u.careRequestRepo.FindByDoctorID(db, doctorID, entity.CareRequestStatus(status))
	if err != nil {
		u.log.Warnf("Failed to list care requests: %+v", err)
		return nil, err
	}

	return converter.CareRequestsToResponses(requests), nil
}
