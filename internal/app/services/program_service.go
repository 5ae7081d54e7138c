package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// validDegrees lists the degree levels campus records use.
var validDegrees = map[string]bool{
	"D3": true, "D4": true, "S1": true, "S2": true, "S3": true,
}

// ProgramService defines the interface for study program operations
type ProgramService interface {
	CreateProgram(ctx context.Context, program *models.Program) (int64, error)
	GetProgramByID(ctx context.Context, id int64) (*models.Program, error)
	GetPrograms(ctx context.Context, facultyID int64) ([]*models.Program, error)
	UpdateProgram(ctx context.Context, program *models.Program) error
	DeleteProgram(ctx context.Context, id int64) error
}

type programServiceImpl struct {
	programRepo *repositories.ProgramRepository
	facultyRepo *repositories.FacultyRepository
}

// NewProgramService creates a new program service instance
func NewProgramService(programRepo *repositories.ProgramRepository, facultyRepo *repositories.FacultyRepository) ProgramService {
	return &programServiceImpl{
		programRepo: programRepo,
		facultyRepo: facultyRepo,
	}
}

func (s *programServiceImpl) validateProgram(program *models.Program) error {
	if program == nil {
		return fmt.Errorf("%w: program is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(program.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !isValidEntityCode(program.Code) {
		return fmt.Errorf("%w: code must be uppercase alphanumeric", apperrors.ErrValidationFailed)
	}
	if !validDegrees[program.Degree] {
		return fmt.Errorf("%w: degree must be one of D3, D4, S1, S2, S3", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateProgram creates a study program under an existing faculty
func (s *programServiceImpl) CreateProgram(ctx context.Context, program *models.Program) (int64, error) {
	if err := s.validateProgram(program); err != nil {
		return 0, err
	}

	if _, err := s.facultyRepo.GetFacultyByID(ctx, program.FacultyID); err != nil {
		return 0, err
	}

	return s.programRepo.CreateProgram(ctx, program)
}

// GetProgramByID retrieves a study program by ID
func (s *programServiceImpl) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	return s.programRepo.GetProgramByID(ctx, id)
}

// GetPrograms retrieves study programs, optionally for one faculty
func (s *programServiceImpl) GetPrograms(ctx context.Context, facultyID int64) ([]*models.Program, error) {
	return s.programRepo.GetPrograms(ctx, facultyID)
}

// UpdateProgram updates an existing study program
func (s *programServiceImpl) UpdateProgram(ctx context.Context, program *models.Program) error {
	if err := s.validateProgram(program); err != nil {
		return err
	}
	return s.programRepo.UpdateProgram(ctx, program)
}

// DeleteProgram deletes a study program by ID
func (s *programServiceImpl) DeleteProgram(ctx context.Context, id int64) error {
	return s.programRepo.DeleteProgram(ctx, id)
}
