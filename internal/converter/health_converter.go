package converter

import (
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
)

// HealthMetricToResponse converts a HealthMetric entity to its DTO
func HealthMetricToResponse(metric *entity.HealthMetric) *dto.HealthMetricResponse {
	if metric == nil {
		return nil
	}

	return &dto.HealthMetricResponse{
		ID:         metric.ID,
		PatientID:  metric.PatientID,
		MetricType: metric.MetricType,
		Value:      metric.Value,
		Unit:       metric.Unit,
		RecordedAt: metric.RecordedAt,
		Notes:      metric.Notes,
	}
}

// HealthMetricsToResponses converts a slice of HealthMetric entities to DTOs
func HealthMetricsToResponses(metrics []entity.HealthMetric) []dto.HealthMetricResponse {
	responses := make([]dto.HealthMetricResponse, len(metrics))
	for i := range metrics {
		responses[i] = *HealthMetricToResponse(&metrics[i])
	}
	return responses
}

// MedicalRecordToResponse converts a MedicalRecord entity to its DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:          record.ID,
		PatientID:   record.PatientID,
		RecordType:  record.RecordType,
		Title:       record.Title,
		Description: record.Description,
		FilePath:    record.FilePath,
		UploadedBy:  record.UploadedBy,
		UploadedAt:  record.UploadedAt,
	}
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}

// HealthDataFileToResponse converts a HealthDataFile entity to its DTO
func HealthDataFileToResponse(file *entity.HealthDataFile) *dto.HealthDataFileResponse {
	if file == nil {
		return nil
	}

	return &dto.HealthDataFileResponse{
		ID:           file.ID,
		PatientID:    file.PatientID,
		Filename:     file.Filename,
		FileType:     file.FileType,
		UploadedAt:   file.UploadedAt,
		Processed:    file.Processed,
		TotalRecords: file.TotalRecords,
	}
}

// HealthDataFilesToResponses converts a slice of HealthDataFile entities to DTOs
func HealthDataFilesToResponses(files []entity.HealthDataFile) []dto.HealthDataFileResponse {
	responses := make([]dto.HealthDataFileResponse, len(files))
	for i := range files {
		responses[i] = *HealthDataFileToResponse(&files[i])
	}
	return responses
}
