package usecase

import (
	"context"

	"carelink/internal/converter"
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
	"carelink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	patientSearchLimit  = 20
	recentPatientsLimit = 5
)

// PatientDetail bundles everything a doctor sees about one patient.
type PatientDetail struct {
	Patient *dto.PatientProfileResponse `json:"patient"`
	Metrics []dto.HealthMetricResponse  `json:"metrics"`
	Records []dto.MedicalRecordResponse `json:"records"`
}

type DoctorUsecase interface {
	ListAssignedPatients(ctx context.Context, doctorID uuid.UUID) ([]dto.AssignedPatientResponse, error)
	GetPatientDetail(ctx context.Context, doctorID, patientID uuid.UUID) (*PatientDetail, error)
	SearchPatients(ctx context.Context, query string) ([]dto.PatientProfileResponse, error)
	Dashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error)
}

type doctorUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	careAssignmentRepo repository.CareAssignmentRepository
	appointmentRepo    repository.AppointmentRepository
	metricRepo         repository.HealthMetricRepository
	recordRepo         repository.MedicalRecordRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	careAssignmentRepo repository.CareAssignmentRepository,
	appointmentRepo repository.AppointmentRepository,
	metricRepo repository.HealthMetricRepository,
	recordRepo repository.MedicalRecordRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:                 db,
		log:                log,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		careAssignmentRepo: careAssignmentRepo,
		appointmentRepo:    appointmentRepo,
		metricRepo:         metricRepo,
		recordRepo:         recordRepo,
	}
}

func (u *doctorUsecase) ListAssignedPatients(ctx context.Context, doctorID uuid.UUID) ([]dto.AssignedPatientResponse, error) {
	db := u.db.WithContext(ctx)

	assignments, err := u.careAssignmentRepo.FindActiveByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list assignments: %+v", err)
		return nil, err
	}

	return u.assignmentsToPatients(db, assignments)
}

// GetPatientDetail returns a patient's profile, metrics and records,
// but only while an active care relationship exists.
func (u *doctorUsecase) GetPatientDetail(ctx context.Context, doctorID, patientID uuid.UUID) (*PatientDetail, error) {
	db := u.db.WithContext(ctx)

	assignment, err := u.careAssignmentRepo.FindActiveByPair(db, patientID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check care assignment: %+v", err)
		return nil, err
	}
	if assignment == nil {
		return nil, ErrNoActiveAssignment
	}

	patient, err := u.patientProfileRepo.FindByUserID(db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	metrics, err := u.metricRepo.FindByPatientID(db, patientID, "", 100)
	if err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindByPatientID(db, patientID)
	if err != nil {
		return nil, err
	}

	return &PatientDetail{
		Patient: converter.PatientProfileToResponse(patient),
		Metrics: converter.HealthMetricsToResponses(metrics),
		Records: converter.MedicalRecordsToResponses(records),
	}, nil
}

func (u *doctorUsecase) SearchPatients(ctx context.Context, query string) ([]dto.PatientProfileResponse, error) {
	patients, err := u.patientProfileRepo.SearchByName(u.db.WithContext(ctx), query, patientSearchLimit)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return converter.PatientProfilesToResponses(patients), nil
}

func (u *doctorUsecase) Dashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	patientCount, err := u.careAssignmentRepo.CountActiveByDoctorID(db, doctorID)
	if err != nil {
		return nil, err
	}

	appointmentCount, err := u.appointmentRepo.CountByDoctorID(db, doctorID)
	if err != nil {
		return nil, err
	}

	pending, err := u.appointmentRepo.FindPendingByDoctorID(db, doctorID)
	if err != nil {
		return nil, err
	}

	recent, err := u.careAssignmentRepo.FindRecentActiveByDoctorID(db, doctorID, recentPatientsLimit)
	if err != nil {
		return nil, err
	}
	recentPatients, err := u.assignmentsToPatients(db, recent)
	if err != nil {
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		Profile:             converter.DoctorProfileToResponse(profile),
		PatientCount:        patientCount,
		AppointmentCount:    appointmentCount,
		PendingAppointments: converter.AppointmentsToResponses(pending),
		RecentPatients:      recentPatients,
	}, nil
}

func (u *doctorUsecase) assignmentsToPatients(db *gorm.DB, assignments []entity.CareAssignment) ([]dto.AssignedPatientResponse, error) {
	patients := make([]dto.AssignedPatientResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]

		latest, err := u.metricRepo.FindLatestByPatientID(db, a.PatientID)
		if err != nil {
			u.log.Warnf("Failed to load latest metric for %s: %+v", a.PatientID, err)
		}

		patients = append(patients, dto.AssignedPatientResponse{
			AssignmentID: a.ID,
			Patient:      converter.PatientProfileToResponse(&a.Patient),
			AssignedDate: a.AssignedDate,
			LatestMetric: converter.HealthMetricToResponse(latest),
		})
	}
	return patients, nil
}
