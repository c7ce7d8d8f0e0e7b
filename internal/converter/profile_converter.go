package converter

import (
	"time"

	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
)

// PatientProfileToResponse converts a PatientProfile entity to its DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	resp := &dto.PatientProfileResponse{
		UserID:           profile.UserID,
		FullName:         profile.FullName,
		Gender:           profile.Gender,
		PhoneNumber:      profile.PhoneNumber,
		Address:          profile.Address,
		BloodGroup:       profile.BloodGroup,
		EmergencyContact: profile.EmergencyContact,
	}

	if profile.DateOfBirth != nil {
		resp.DateOfBirth = profile.DateOfBirth.Format("2006-01-02")
		resp.Age = profile.Age(time.Now())
	}

	return resp
}

// PatientProfilesToResponses converts a slice of PatientProfile entities to DTOs
func PatientProfilesToResponses(profiles []entity.PatientProfile) []dto.PatientProfileResponse {
	responses := make([]dto.PatientProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientProfileToResponse(&profiles[i])
	}
	return responses
}

// DoctorProfileToResponse converts a DoctorProfile entity to its DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		UserID:            profile.UserID,
		FullName:          profile.FullName,
		Specialization:    profile.Specialization,
		LicenseNumber:     profile.LicenseNumber,
		PhoneNumber:       profile.PhoneNumber,
		Location:          profile.Location,
		YearsOfExperience: profile.YearsOfExperience,
		Qualifications:    profile.Qualifications,
		Bio:               profile.Bio,
		Availability:      profile.Availability,
		Rating:            profile.Rating,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorProfileResponse {
	responses := make([]dto.DoctorProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}

// UserToResponse converts a User entity with its loaded profile to a DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Role:           entity.RoleName(user.RoleID),
		DoctorProfile:  DoctorProfileToResponse(user.DoctorProfile),
		PatientProfile: PatientProfileToResponse(user.PatientProfile),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
