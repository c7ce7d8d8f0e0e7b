package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carelink/internal/converter"
	"carelink/internal/delivery/dto"
	"carelink/internal/domain/entity"
	"carelink/internal/domain/repository"
	"carelink/internal/infrastructure/storage"
	"carelink/internal/service"
	"carelink/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
)

// historicalSeedDays is how much metric history a new patient starts with.
const historicalSeedDays = 7

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdatePatientProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
	UpdateDoctorProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	IsTokenValid(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error)
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	careRequestRepo    repository.CareRequestRepository
	careAssignmentRepo repository.CareAssignmentRepository
	appointmentRepo    repository.AppointmentRepository
	metricRepo         repository.HealthMetricRepository
	recordRepo         repository.MedicalRecordRepository
	fileRepo           repository.HealthDataFileRepository
	chatRepo           repository.ChatMessageRepository
	jwtService         *jwt.JWTService
	redisClient        *redis.Client
	store              *storage.LocalStore
	generator          *service.MetricGenerator
	audit              service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	careRequestRepo repository.CareRequestRepository,
	careAssignmentRepo repository.CareAssignmentRepository,
	appointmentRepo repository.AppointmentRepository,
	metricRepo repository.HealthMetricRepository,
	recordRepo repository.MedicalRecordRepository,
	fileRepo repository.HealthDataFileRepository,
	chatRepo repository.ChatMessageRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	store *storage.LocalStore,
	generator *service.MetricGenerator,
	audit service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		careRequestRepo:    careRequestRepo,
		careAssignmentRepo: careAssignmentRepo,
		appointmentRepo:    appointmentRepo,
		metricRepo:         metricRepo,
		recordRepo:         recordRepo,
		fileRepo:           fileRepo,
		chatRepo:           chatRepo,
		jwtService:         jwtService,
		redisClient:        redisClient,
		store:              store,
		generator:          generator,
		audit:              audit,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		dob = &parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		RoleID:   entity.RoleIDPatient,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.PatientProfile{
		UserID:           user.ID,
		FullName:         req.FullName,
		DateOfBirth:      dob,
		Gender:           req.Gender,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		BloodGroup:       req.BloodGroup,
		EmergencyContact: req.EmergencyContact,
	}

	if err := u.patientProfileRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
		"email": user.Email,
		"role":  entity.RolePatient,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Seed historical readings outside the transaction. A failure here
	// leaves the account usable, so it only gets logged.
	if err := u.generator.SeedHistorical(ctx, user.ID, historicalSeedDays); err != nil {
		u.log.Warnf("Failed to seed historical metrics for %s: %+v", user.ID, err)
	}

	user.PatientProfile = profile
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		RoleID:   entity.RoleIDDoctor,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:            user.ID,
		FullName:          req.FullName,
		Specialization:    req.Specialization,
		LicenseNumber:     req.LicenseNumber,
		PhoneNumber:       req.PhoneNumber,
		Location:          req.Location,
		YearsOfExperience: req.YearsOfExperience,
		Qualifications:    req.Qualifications,
		Bio:               req.Bio,
		Availability:      req.Availability,
		Rating:            5.0,
	}

	if err := u.doctorProfileRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
		"email": user.Email,
		"role":  entity.RoleDoctor,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.DoctorProfile = profile
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.storeTokens(ctx, user.ID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	userResp, err := u.GetCurrentUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         userResp,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	// Revoke all refresh tokens so the session cannot be renewed.
	refreshPattern := fmt.Sprintf("refresh_token:%s:*", userID.String())
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to list refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single-use.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(claims.UserID, claims.Email, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.storeTokens(ctx, claims.UserID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch user.RoleID {
	case entity.RoleIDPatient:
		profile, err := u.patientProfileRepo.FindByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		user.PatientProfile = profile
	case entity.RoleIDDoctor:
		profile, err := u.doctorProfileRepo.FindByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		user.DoctorProfile = profile
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) UpdatePatientProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	old := *profile

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.DateOfBirth = &dob
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.BloodGroup != "" {
		profile.BloodGroup = req.BloodGroup
	}
	if req.EmergencyContact != "" {
		profile.EmergencyContact = req.EmergencyContact
	}

	if err := u.patientProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "patient_profile", userID.String(), old, profile)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *authUsecase) UpdateDoctorProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	old := *profile

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}
	if req.Qualifications != "" {
		profile.Qualifications = req.Qualifications
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Availability != "" {
		profile.Availability = req.Availability
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "doctor_profile", userID.String(), old, profile)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// DeleteAccount removes the user and everything linked to them. Files
// on disk are removed best-effort after the database delete commits.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	// Collect file paths before the rows disappear.
	var filePaths []string

	switch user.RoleID {
	case entity.RoleIDPatient:
		records, err := u.recordRepo.FindByPatientID(tx, userID)
		if err != nil {
			return err
		}
		for _, r := range records {
			if r.FilePath != "" {
				filePaths = append(filePaths, r.FilePath)
			}
		}

		files, err := u.fileRepo.FindByPatientID(tx, userID)
		if err != nil {
			return err
		}
		for _, f := range files {
			if f.FilePath != "" {
				filePaths = append(filePaths, f.FilePath)
			}
		}

		if err := u.metricRepo.DeleteByPatientID(tx, userID); err != nil {
			return err
		}
		if err := u.recordRepo.DeleteByPatientID(tx, userID); err != nil {
			return err
		}
		if err := u.fileRepo.DeleteByPatientID(tx, userID); err != nil {
			return err
		}
		if err := u.appointmentRepo.DeleteByPatientID(tx, userID); err != nil {
			return err
		}
		if err := u.careRequestRepo.DeleteByPatientID(tx, userID); err != nil {
			return err
		}
		if err := u.careAssignmentRepo.DeleteByPatientID(tx, userID); err != nil {
			return err
		}
		if err := u.chatRepo.DeleteByPatientID(tx, userID); err != nil {
			return err
		}
		if err := u.patientProfileRepo.Delete(tx, userID); err != nil {
			return err
		}

	case entity.RoleIDDoctor:
		if err := u.appointmentRepo.DeleteByDoctorID(tx, userID); err != nil {
			return err
		}
		if err := u.careRequestRepo.DeleteByDoctorID(tx, userID); err != nil {
			return err
		}
		if err := u.careAssignmentRepo.DeleteByDoctorID(tx, userID); err != nil {
			return err
		}
		if err := u.chatRepo.DeleteByDoctorID(tx, userID); err != nil {
			return err
		}
		if err := u.recordRepo.DeleteByUploader(tx, userID); err != nil {
			return err
		}
		if err := u.doctorProfileRepo.Delete(tx, userID); err != nil {
			return err
		}
	}

	if _, err := u.chatRepo.DeleteByUserID(tx, userID, nil); err != nil {
		return err
	}

	u.audit.LogDelete(ctx, tx, &userID, entity.AuditActionUserDelete, "user", userID.String(), map[string]interface{}{
		"email": user.Email,
		"role":  entity.RoleName(user.RoleID),
	})

	if err := u.userRepo.Delete(tx, userID); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	for _, path := range filePaths {
		if err := u.store.Remove(path); err != nil {
			u.log.Warnf("Failed to remove file %s: %+v", path, err)
		}
	}

	if err := u.revokeAllTokens(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens for deleted user %s: %+v", userID, err)
	}

	return nil
}

func (u *authUsecase) IsTokenValid(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	var key string
	if tokenType == jwt.AccessToken {
		key = fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
	} else {
		key = fmt.Sprintf("refresh_token:%s:%s", userID.String(), tokenID)
	}

	exists, err := u.redisClient.Exists(ctx, key).Result()
	if err != nil {
		u.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}

	return exists > 0, nil
}

func (u *authUsecase) storeTokens(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) revokeAllTokens(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}
