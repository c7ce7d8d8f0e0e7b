package converter

import (
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"

	"github.com/google/uuid"
)

func patientIfLoaded(p *entity.PatientProfile) *dto.PatientProfileResponse {
	if p == nil || p.UserID == uuid.Nil {
		return nil
	}
	return PatientProfileToResponse(p)
}

func doctorIfLoaded(d *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if d == nil || d.UserID == uuid.Nil {
		return nil
	}
	return DoctorProfileToResponse(d)
}

// CareRequestToResponse converts a CareRequest entity to its DTO
func CareRequestToResponse(request *entity.CareRequest) *dto.CareRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.CareRequestResponse{
		ID:        request.ID,
		PatientID: request.PatientID,
		DoctorID:  request.DoctorID,
		Status:    string(request.Status),
		Message:   request.Message,
		Patient:   patientIfLoaded(&request.Patient),
		Doctor:    doctorIfLoaded(&request.Doctor),
		CreatedAt: request.CreatedAt,
		UpdatedAt: request.UpdatedAt,
	}
}

// CareRequestsToResponses converts a slice of CareRequest entities to DTOs
func CareRequestsToResponses(requests []entity.CareRequest) []dto.CareRequestResponse {
	responses := make([]dto.CareRequestResponse, len(requests))
	for i := range requests {
		responses[i] = *CareRequestToResponse(&requests[i])
	}
	return responses
}

// CareAssignmentToResponse converts a CareAssignment entity to its DTO
func CareAssignmentToResponse(assignment *entity.CareAssignment) *dto.CareAssignmentResponse {
	if assignment == nil {
		return nil
	}

	return &dto.CareAssignmentResponse{
		ID:           assignment.ID,
		PatientID:    assignment.PatientID,
		DoctorID:     assignment.DoctorID,
		IsActive:     assignment.IsActive,
		AssignedDate: assignment.AssignedDate,
		Patient:      patientIfLoaded(&assignment.Patient),
		Doctor:       doctorIfLoaded(&assignment.Doctor),
	}
}

// CareAssignmentsToResponses converts a slice of CareAssignment entities to DTOs
func CareAssignmentsToResponses(assignments []entity.CareAssignment) []dto.CareAssignmentResponse {
	responses := make([]dto.CareAssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = *CareAssignmentToResponse(&assignments[i])
	}
	return responses
}
