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

// dashboardMetricTypes are the metric cards shown on the patient dashboard.
var dashboardMetricTypes = []string{
	entity.MetricTypeHeartbeat,
	entity.MetricTypeBloodPressure,
	entity.MetricTypeTemperature,
	entity.MetricTypeSugarLevel,
	entity.MetricTypeSleepHours,
}

type PatientUsecase interface {
	ListAssignedDoctors(ctx context.Context, patientID uuid.UUID) ([]dto.AssignedDoctorResponse, error)
	ListAvailableDoctors(ctx context.Context, patientID uuid.UUID) ([]dto.DoctorProfileResponse, error)
	Dashboard(ctx context.Context, patientID uuid.UUID) (*dto.PatientDashboardResponse, error)
}

type patientUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	careAssignmentRepo repository.CareAssignmentRepository
	metricRepo         repository.HealthMetricRepository
	recordRepo         repository.MedicalRecordRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	careAssignmentRepo repository.CareAssignmentRepository,
	metricRepo repository.HealthMetricRepository,
	recordRepo repository.MedicalRecordRepository,
) PatientUsecase {
	return &patientUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		careAssignmentRepo: careAssignmentRepo,
		metricRepo:         metricRepo,
		recordRepo:         recordRepo,
	}
}

func (u *patientUsecase) ListAssignedDoctors(ctx context.Context, patientID uuid.UUID) ([]dto.AssignedDoctorResponse, error) {
	assignments, err := u.careAssignmentRepo.FindActiveByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list assignments: %+v", err)
		return nil, err
	}

	doctors := make([]dto.AssignedDoctorResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		doctors = append(doctors, dto.AssignedDoctorResponse{
			AssignmentID: a.ID,
			Doctor:       converter.DoctorProfileToResponse(&a.Doctor),
			AssignedDate: a.AssignedDate,
		})
	}

	return doctors, nil
}

// ListAvailableDoctors returns every doctor the patient is not already
// assigned to.
func (u *patientUsecase) ListAvailableDoctors(ctx context.Context, patientID uuid.UUID) ([]dto.DoctorProfileResponse, error) {
	db := u.db.WithContext(ctx)

	doctors, err := u.doctorProfileRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	assignments, err := u.careAssignmentRepo.FindActiveByPatientID(db, patientID)
	if err != nil {
		return nil, err
	}

	assigned := make(map[uuid.UUID]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.DoctorID] = true
	}

	available := make([]entity.DoctorProfile, 0, len(doctors))
	for _, d := range doctors {
		if !assigned[d.UserID] {
			available = append(available, d)
		}
	}

	return converter.DoctorProfilesToResponses(available), nil
}

func (u *patientUsecase) Dashboard(ctx context.Context, patientID uuid.UUID) (*dto.PatientDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.patientProfileRepo.FindByUserID(db, patientID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	latestMetrics := make(map[string]*dto.HealthMetricResponse, len(dashboardMetricTypes))
	for _, metricType := range dashboardMetricTypes {
		metric, err := u.metricRepo.FindLatestByPatientAndType(db, patientID, metricType)
		if err != nil {
			return nil, err
		}
		if metric != nil {
			latestMetrics[metricType] = converter.HealthMetricToResponse(metric)
		}
	}

	recordCount, err := u.recordRepo.CountByPatientID(db, patientID)
	if err != nil {
		return nil, err
	}

	doctorCount, err := u.careAssignmentRepo.CountActiveByPatientID(db, patientID)
	if err != nil {
		return nil, err
	}

	return &dto.PatientDashboardResponse{
		Profile:       converter.PatientProfileToResponse(profile),
		LatestMetrics: latestMetrics,
		RecordCount:   recordCount,
		DoctorCount:   doctorCount,
	}, nil
}
