package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetCourses(ctx context.Context, programID int64) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo  *repositories.CourseRepository
	programRepo *repositories.ProgramRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, programRepo *repositories.ProgramRepository) CourseService {
	return &courseServiceImpl{
		courseRepo:  courseRepo,
		programRepo: programRepo,
	}
}

func (s *courseServiceImpl) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !isValidEntityCode(course.Code) {
		return fmt.Errorf("%w: code must be uppercase alphanumeric", apperrors.ErrValidationFailed)
	}
	if course.CreditHours < 1 || course.CreditHours > 6 {
		return fmt.Errorf("%w: credit hours must be between 1 and 6", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateCourse creates a course under an existing study program
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	if err := s.validateCourse(course); err != nil {
		return 0, err
	}

	if _, err := s.programRepo.GetProgramByID(ctx, course.ProgramID); err != nil {
		return 0, err
	}

	return s.courseRepo.CreateCourse(ctx, course)
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetCourseByID(ctx, id)
}

// GetCourses retrieves courses, optionally for one program
func (s *courseServiceImpl) GetCourses(ctx context.Context, programID int64) ([]*models.Course, error) {
	return s.courseRepo.GetCourses(ctx, programID)
}

// UpdateCourse updates an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}
	return s.courseRepo.UpdateCourse(ctx, course)
}

// DeleteCourse deletes a course by ID
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.DeleteCourse(ctx, id)
}
