package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/auth"
	"github.com/campuskit/siakad/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	SetUserStatus(ctx context.Context, id access.Identity, userID int64, active bool) error
}

type authServiceImpl struct {
	userRepo     *repositories.UserRepository
	tokenRepo    *repositories.TokenRepository
	lecturerRepo *repositories.LecturerRepository
	studentRepo  *repositories.StudentRepository
	jwtService   *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	lecturerRepo *repositories.LecturerRepository,
	studentRepo *repositories.StudentRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		lecturerRepo: lecturerRepo,
		studentRepo:  studentRepo,
		jwtService:   jwtService,
	}
}

// Login verifies credentials and issues a token pair. A disabled account is
// rejected the same way regardless of whether the password matched, so the
// response does not leak which part failed.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		// Login already succeeded; the stamp is best effort
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	return tokens, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every outstanding refresh token of the user
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// GetProfile returns the account plus the lecturer or student record linked
// to it.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}

	linkedID, err := s.resolveLinkedID(ctx, user)
	if err != nil {
		return nil, err
	}
	profile.LinkedID = linkedID

	return profile, nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes all refresh tokens so other sessions must log in again.
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidationFailed)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// SetUserStatus enables or disables an account. Disabling also revokes every
// outstanding refresh token so open sessions end at the next refresh.
func (s *authServiceImpl) SetUserStatus(ctx context.Context, id access.Identity, userID int64, active bool) error {
	if !id.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	if userID == id.UserID {
		return fmt.Errorf("%w: cannot change the status of your own account", apperrors.ErrValidationFailed)
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}

	if !active {
		return s.tokenRepo.RevokeAllForUser(ctx, userID)
	}
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	stored := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}
	if err := s.tokenRepo.StoreRefreshToken(ctx, stored); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}

// resolveLinkedID finds the lecturer or student record behind an account.
// Admin accounts have none.
func (s *authServiceImpl) resolveLinkedID(ctx context.Context, user *models.User) (int64, error) {
	switch user.Role {
	case models.RoleLecturer:
		lecturer, err := s.lecturerRepo.GetLecturerByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrLecturerNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return lecturer.ID, nil
	case models.RoleStudent:
		student, err := s.studentRepo.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return student.ID, nil
	default:
		return 0, nil
	}
}
