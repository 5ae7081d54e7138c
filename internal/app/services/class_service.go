package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// ClassService defines the interface for class operations
type ClassService interface {
	CreateClass(ctx context.Context, class *models.Class) (int64, error)
	GetClassByID(ctx context.Context, id int64) (*models.Class, error)
	GetClasses(ctx context.Context, programID int64) ([]*models.Class, error)
	GetClassStudents(ctx context.Context, classID int64) ([]*models.Student, error)
	UpdateClass(ctx context.Context, class *models.Class) error
	DeleteClass(ctx context.Context, id int64) error
}

type classServiceImpl struct {
	classRepo   *repositories.ClassRepository
	studentRepo *repositories.StudentRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo *repositories.ClassRepository, studentRepo *repositories.StudentRepository) ClassService {
	return &classServiceImpl{
		classRepo:   classRepo,
		studentRepo: studentRepo,
	}
}

func (s *classServiceImpl) validateClass(class *models.Class) error {
	if class == nil {
		return fmt.Errorf("%w: class is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(class.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if class.CohortYear < 2000 || class.CohortYear > 2100 {
		return fmt.Errorf("%w: cohort year out of range", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateClass creates a new class
func (s *classServiceImpl) CreateClass(ctx context.Context, class *models.Class) (int64, error) {
	if err := s.validateClass(class); err != nil {
		return 0, err
	}
	return s.classRepo.CreateClass(ctx, class)
}

// GetClassByID retrieves a class by ID
func (s *classServiceImpl) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	return s.classRepo.GetClassByID(ctx, id)
}

// GetClasses retrieves classes, optionally for one program
func (s *classServiceImpl) GetClasses(ctx context.Context, programID int64) ([]*models.Class, error) {
	return s.classRepo.GetClasses(ctx, programID)
}

// GetClassStudents retrieves the students assigned to a class
func (s *classServiceImpl) GetClassStudents(ctx context.Context, classID int64) ([]*models.Student, error) {
	if _, err := s.classRepo.GetClassByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.studentRepo.GetStudentsByClass(ctx, classID)
}

// UpdateClass updates an existing class
func (s *classServiceImpl) UpdateClass(ctx context.Context, class *models.Class) error {
	if err := s.validateClass(class); err != nil {
		return err
	}
	return s.classRepo.UpdateClass(ctx, class)
}

// DeleteClass deletes a class by ID
func (s *classServiceImpl) DeleteClass(ctx context.Context, id int64) error {
	return s.classRepo.DeleteClass(ctx, id)
}
