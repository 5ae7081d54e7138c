package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) error
	DeleteFaculty(ctx context.Context, id int64) error
}

type facultyServiceImpl struct {
	facultyRepo *repositories.FacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo *repositories.FacultyRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
	}
}

// validateFaculty validates faculty data before database operations
func (s *facultyServiceImpl) validateFaculty(faculty *models.Faculty) error {
	if faculty == nil {
		return fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(faculty.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if !isValidEntityCode(faculty.Code) {
		return fmt.Errorf("%w: code must be uppercase alphanumeric", apperrors.ErrValidationFailed)
	}

	return nil
}

// isValidEntityCode checks a short uppercase alphanumeric code such as FT or
// TI201.
func isValidEntityCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
			return false
		}
	}

	return true
}

// CreateFaculty creates a new faculty after validation
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return 0, err
	}
	return s.facultyRepo.CreateFaculty(ctx, faculty)
}

// GetFacultyByID retrieves a faculty by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	return s.facultyRepo.GetFacultyByID(ctx, id)
}

// GetAllFaculties retrieves all faculties
func (s *facultyServiceImpl) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	return s.facultyRepo.GetAllFaculties(ctx)
}

// UpdateFaculty updates an existing faculty after validation
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, faculty *models.Faculty) error {
	if err := s.validateFaculty(faculty); err != nil {
		return err
	}
	return s.facultyRepo.UpdateFaculty(ctx, faculty)
}

// DeleteFaculty deletes a faculty by ID
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	return s.facultyRepo.DeleteFaculty(ctx, id)
}
