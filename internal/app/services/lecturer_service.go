package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/db"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/auth"
)

// LecturerService defines the interface for lecturer management
type LecturerService interface {
	CreateLecturer(ctx context.Context, req *dto.CreateLecturerRequest) (*models.Lecturer, error)
	GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error)
	GetLecturers(ctx context.Context, programID int64, page, size int) ([]*models.Lecturer, int64, error)
	UpdateLecturer(ctx context.Context, id int64, req *dto.UpdateLecturerRequest) (*models.Lecturer, error)
	DeleteLecturer(ctx context.Context, id int64) error
}

type lecturerServiceImpl struct {
	database     *db.PostgresDB
	userRepo     *repositories.UserRepository
	lecturerRepo *repositories.LecturerRepository
	programRepo  *repositories.ProgramRepository
}

// NewLecturerService creates a new lecturer service instance
func NewLecturerService(
	database *db.PostgresDB,
	userRepo *repositories.UserRepository,
	lecturerRepo *repositories.LecturerRepository,
	programRepo *repositories.ProgramRepository,
) LecturerService {
	return &lecturerServiceImpl{
		database:     database,
		userRepo:     userRepo,
		lecturerRepo: lecturerRepo,
		programRepo:  programRepo,
	}
}

// isDigits reports whether s is non-empty and all decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// CreateLecturer creates the account and the lecturer record in one
// transaction, so there is never an account without its lecturer row.
func (s *lecturerServiceImpl) CreateLecturer(ctx context.Context, req *dto.CreateLecturerRequest) (*models.Lecturer, error) {
	if !isDigits(req.NIDN) {
		return nil, fmt.Errorf("%w: nidn must be numeric", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.programRepo.GetProgramByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	lecturer := &models.Lecturer{
		NIDN:      req.NIDN,
		Name:      req.Name,
		ProgramID: req.ProgramID,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user := &models.User{
			Email:    req.Email,
			Password: hash,
			FullName: req.Name,
			Role:     models.RoleLecturer,
			IsActive: true,
		}
		userID, err := s.userRepo.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}

		lecturer.UserID = userID
		lecturerID, err := s.lecturerRepo.CreateLecturer(ctx, tx, lecturer)
		if err != nil {
			return err
		}
		lecturer.ID = lecturerID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lecturer, nil
}

// GetLecturerByID retrieves a lecturer by ID
func (s *lecturerServiceImpl) GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	return s.lecturerRepo.GetLecturerByID(ctx, id)
}

// GetLecturers retrieves a page of lecturers with the total count
func (s *lecturerServiceImpl) GetLecturers(ctx context.Context, programID int64, page, size int) ([]*models.Lecturer, int64, error) {
	offset, limit := pageWindow(page, size)
	return s.lecturerRepo.GetLecturers(ctx, programID, offset, limit)
}

// UpdateLecturer updates the mutable lecturer fields
func (s *lecturerServiceImpl) UpdateLecturer(ctx context.Context, id int64, req *dto.UpdateLecturerRequest) (*models.Lecturer, error) {
	if !isDigits(req.NIDN) {
		return nil, fmt.Errorf("%w: nidn must be numeric", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	lecturer, err := s.lecturerRepo.GetLecturerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lecturer.NIDN = req.NIDN
	lecturer.Name = req.Name
	lecturer.ProgramID = req.ProgramID

	if err := s.lecturerRepo.UpdateLecturer(ctx, lecturer); err != nil {
		return nil, err
	}

	return lecturer, nil
}

// DeleteLecturer removes the lecturer by deleting its account; the lecturer
// row cascades away. Schedules referencing the lecturer block the delete.
func (s *lecturerServiceImpl) DeleteLecturer(ctx context.Context, id int64) error {
	lecturer, err := s.lecturerRepo.GetLecturerByID(ctx, id)
	if err != nil {
		return err
	}

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.userRepo.DeleteUser(ctx, tx, lecturer.UserID)
	})
}
