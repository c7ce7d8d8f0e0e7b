package usecase

import (
	"context"
	"errors"
	"io"

	"carelink/internal/converter"
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
	"carelink/internal/domain/repository"
	"carelink/internal/infrastructure/storage"
	"carelink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("medical record not found")
	ErrNotRecordOwner = errors.New("medical record does not belong to this patient")
)

type UploadRecordInput struct {
	RecordType  string
	Title       string
	Description string
	Filename    string
	Content     io.Reader
}

type MedicalRecordUsecase interface {
	Upload(ctx context.Context, patientID uuid.UUID, uploaderID uuid.UUID, in *UploadRecordInput) (*dto.MedicalRecordResponse, error)
	UploadForPatient(ctx context.Context, doctorID, patientID uuid.UUID, in *UploadRecordInput) (*dto.MedicalRecordResponse, error)
	List(ctx context.Context, patientID uuid.UUID) ([]dto.MedicalRecordResponse, error)
	Delete(ctx context.Context, patientID uuid.UUID, recordID int64) error
}

type medicalRecordUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	recordRepo         repository.MedicalRecordRepository
	careAssignmentRepo repository.CareAssignmentRepository
	store              *storage.LocalStore
	audit              service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	careAssignmentRepo repository.CareAssignmentRepository,
	store *storage.LocalStore,
	audit service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:                 db,
		log:                log,
		recordRepo:         recordRepo,
		careAssignmentRepo: careAssignmentRepo,
		store:              store,
		audit:              audit,
	}
}

func (u *medicalRecordUsecase) Upload(ctx context.Context, patientID uuid.UUID, uploaderID uuid.UUID, in *UploadRecordInput) (*dto.MedicalRecordResponse, error) {
	storedPath, err := u.store.Save("records", in.Filename, storage.MedicalRecordExtensions, in.Content)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) || errors.Is(err, storage.ErrEmptyFilename) {
			return nil, ErrUnsupportedFile
		}
		u.log.Warnf("Failed to store medical record file: %+v", err)
		return nil, err
	}

	recordType := in.RecordType
	if recordType == "" {
		recordType = "report"
	}
	title := in.Title
	if title == "" {
		title = in.Filename
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record := &entity.MedicalRecord{
		PatientID:   patientID,
		RecordType:  recordType,
		Title:       title,
		Description: in.Description,
		FilePath:    storedPath,
		UploadedBy:  &uploaderID,
	}

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		u.store.Remove(storedPath)
		return nil, err
	}

	u.audit.LogCreate(ctx, tx, &uploaderID, entity.AuditActionRecordUpload, "medical_record", "", map[string]interface{}{
		"patient_id": patientID.String(),
		"title":      title,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.store.Remove(storedPath)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// UploadForPatient lets a doctor attach a record to an assigned
// patient's file. The record lands on the patient's chart with the
// doctor as uploader.
func (u *medicalRecordUsecase) UploadForPatient(ctx context.Context, doctorID, patientID uuid.UUID, in *UploadRecordInput) (*dto.MedicalRecordResponse, error) {
	assignment, err := u.careAssignmentRepo.FindActiveByPair(u.db.WithContext(ctx), patientID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check care assignment: %+v", err)
		return nil, err
	}
	if assignment == nil {
		return nil, ErrNoActiveAssignment
	}

	return u.Upload(ctx, patientID, doctorID, in)
}

func (u *medicalRecordUsecase) List(ctx context.Context, patientID uuid.UUID) ([]dto.MedicalRecordResponse, error) {
	records, err := u.recordRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordsToResponses(records), nil
}

func (u *medicalRecordUsecase) Delete(ctx context.Context, patientID uuid.UUID, recordID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}
	if record.PatientID != patientID {
		return ErrNotRecordOwner
	}

	if err := u.recordRepo.Delete(tx, recordID); err != nil {
		u.log.Warnf("Failed to delete medical record: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, tx, &patientID, entity.AuditActionRecordDelete, "medical_record", "", record)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if record.FilePath != "" {
		if err := u.store.Remove(record.FilePath); err != nil {
			u.log.Warnf("Failed to remove record file %s: %+v", record.FilePath, err)
		}
	}

	return nil
}
