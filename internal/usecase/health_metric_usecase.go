package usecase

import (
	"context"
	"errors"
	"io"
	"time"

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
	ErrMetricNotFound  = errors.New("health metric not found")
	ErrNotMetricOwner  = errors.New("health metric does not belong to this patient")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

type HealthMetricUsecase interface {
	Add(ctx context.Context, patientID uuid.UUID, req *dto.AddHealthMetricRequest) (*dto.HealthMetricResponse, error)
	List(ctx context.Context, patientID uuid.UUID, metricType string, limit int) ([]dto.HealthMetricResponse, error)
	Delete(ctx context.Context, patientID uuid.UUID, metricID int64) error
	ImportFile(ctx context.Context, patientID uuid.UUID, filename string, content io.Reader) (*dto.ImportResultResponse, error)
	ListFiles(ctx context.Context, patientID uuid.UUID) ([]dto.HealthDataFileResponse, error)
}

type healthMetricUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	metricRepo    repository.HealthMetricRepository
	fileRepo      repository.HealthDataFileRepository
	store         *storage.LocalStore
	importService *service.HealthImportService
	audit         service.AuditService
}

func NewHealthMetricUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	metricRepo repository.HealthMetricRepository,
	fileRepo repository.HealthDataFileRepository,
	store *storage.LocalStore,
	importService *service.HealthImportService,
	audit service.AuditService,
) HealthMetricUsecase {
	return &healthMetricUsecase{
		db:            db,
		log:           log,
		metricRepo:    metricRepo,
		fileRepo:      fileRepo,
		store:         store,
		importService: importService,
		audit:         audit,
	}
}

// defaultUnits fills in the conventional unit when the client omits it.
var defaultUnits = map[string]string{
	entity.MetricTypeHeartbeat:     "bpm",
	entity.MetricTypeBloodPressure: "mmHg",
	entity.MetricTypeTemperature:   "°F",
	entity.MetricTypeBloodOxygen:   "%",
	entity.MetricTypeSugarLevel:    "mg/dL",
	entity.MetricTypeSleepHours:    "hours",
	entity.MetricTypeSteps:         "steps",
	entity.MetricTypeCalories:      "kcal",
}

func (u *healthMetricUsecase) Add(ctx context.Context, patientID uuid.UUID, req *dto.AddHealthMetricRequest) (*dto.HealthMetricResponse, error) {
	recordedAt := time.Now().UTC()
	if req.RecordedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		recordedAt = parsed
	}

	unit := req.Unit
	if unit == "" {
		unit = defaultUnits[req.MetricType]
	}

	metric := &entity.HealthMetric{
		PatientID:  patientID,
		MetricType: req.MetricType,
		Value:      req.Value,
		Unit:       unit,
		RecordedAt: recordedAt,
		Notes:      req.Notes,
	}

	if err := u.metricRepo.Create(u.db.WithContext(ctx), metric); err != nil {
		u.log.Warnf("Failed to create health metric: %+v", err)
		return nil, err
	}

	return converter.HealthMetricToResponse(metric), nil
}

func (u *healthMetricUsecase) List(ctx context.Context, patientID uuid.UUID, metricType string, limit int) ([]dto.HealthMetricResponse, error) {
	metrics, err := u.metricRepo.FindByPatientID(u.db.WithContext(ctx), patientID, metricType, limit)
	if err != nil {
		u.log.Warnf("Failed to list health metrics: %+v", err)
		return nil, err
	}

	return converter.HealthMetricsToResponses(metrics), nil
}

func (u *healthMetricUsecase) Delete(ctx context.Context, patientID uuid.UUID, metricID int64) error {
	db := u.db.WithContext(ctx)

	metric, err := u.metricRepo.FindByID(db, metricID)
	if err != nil {
		u.log.Warnf("Failed to find health metric: %+v", err)
		return err
	}
	if metric == nil {
		return ErrMetricNotFound
	}
	if metric.PatientID != patientID {
		return ErrNotMetricOwner
	}

	if err := u.metricRepo.Delete(db, metricID); err != nil {
		u.log.Warnf("Failed to delete health metric: %+v", err)
		return err
	}

	return nil
}

// ImportFile stores the upload, decodes it into metric rows and saves
// everything in one transaction. The stored file is cleaned up when
// the import fails.
func (u *healthMetricUsecase) ImportFile(ctx context.Context, patientID uuid.UUID, filename string, content io.Reader) (*dto.ImportResultResponse, error) {
	storedPath, err := u.store.Save("health_data", filename, storage.HealthDataExtensions, content)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) || errors.Is(err, storage.ErrEmptyFilename) {
			return nil, ErrUnsupportedFile
		}
		u.log.Warnf("Failed to store health data file: %+v", err)
		return nil, err
	}

	f, err := u.store.Open(storedPath)
	if err != nil {
		u.store.Remove(storedPath)
		u.log.Warnf("Failed to reopen stored file: %+v", err)
		return nil, err
	}
	defer f.Close()

	metrics, err := u.importService.Parse(patientID, filename, f)
	if err != nil {
		u.store.Remove(storedPath)
		return nil, err
	}

	// A decodable file with no recognized rows is still a completed
	// import; it just carries zero records.
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	file := &entity.HealthDataFile{
		PatientID:    patientID,
		Filename:     filename,
		FilePath:     storedPath,
		FileType:     fileTypeOf(filename),
		Processed:    true,
		TotalRecords: len(metrics),
	}

	if err := u.fileRepo.Create(tx, file); err != nil {
		u.log.Warnf("Failed to create health data file record: %+v", err)
		u.store.Remove(storedPath)
		return nil, err
	}

	if len(metrics) > 0 {
		if err := u.metricRepo.CreateBatch(tx, metrics); err != nil {
			u.log.Warnf("Failed to import health metrics: %+v", err)
			u.store.Remove(storedPath)
			return nil, err
		}
	}

	u.audit.LogCreate(ctx, tx, &patientID, entity.AuditActionHealthDataImport, "health_data_file", "", map[string]interface{}{
		"filename": filename,
		"records":  len(metrics),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.store.Remove(storedPath)
		return nil, err
	}

	return &dto.ImportResultResponse{
		File:            converter.HealthDataFileToResponse(file),
		ImportedRecords: len(metrics),
	}, nil
}

func (u *healthMetricUsecase) ListFiles(ctx context.Context, patientID uuid.UUID) ([]dto.HealthDataFileResponse, error) {
	files, err := u.fileRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list health data files: %+v", err)
		return nil, err
	}

	return converter.HealthDataFilesToResponses(files), nil
}

func fileTypeOf(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i+1:]
		}
	}
	return ""
}
