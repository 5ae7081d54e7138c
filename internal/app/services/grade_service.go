package services

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/campuskit/siakad/internal/app/academics"
	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// GradeStore is the persistence surface the grade service needs. The
// concrete repository satisfies it; tests substitute an in-memory store.
type GradeStore interface {
	UpsertGrade(ctx context.Context, grade *models.Grade) error
	GetGradeByID(ctx context.Context, id int64) (*models.Grade, error)
	GetGrades(ctx context.Context, filter repositories.GradeFilter, scope squirrel.Sqlizer) ([]*models.Grade, error)
	DeleteGrade(ctx context.Context, id int64) error
}

// TeachingChecker answers whether a lecturer has a schedule for a course.
type TeachingChecker interface {
	LecturerTeachesCourse(ctx context.Context, lecturerID, courseID int64) (bool, error)
}

// GradeService defines the interface for grade operations
type GradeService interface {
	UpsertGrade(ctx context.Context, id access.Identity, req *dto.UpsertGradeRequest) (*models.Grade, error)
	GetGrade(ctx context.Context, id access.Identity, gradeID int64) (*models.Grade, error)
	GetGrades(ctx context.Context, id access.Identity, filter dto.GradeFilter) ([]*models.Grade, error)
	GetMyGrades(ctx context.Context, id access.Identity, semester int, academicYear string) ([]*models.Grade, error)
	DeleteGrade(ctx context.Context, id access.Identity, gradeID int64) error
}

type gradeServiceImpl struct {
	grades   GradeStore
	teaching TeachingChecker
}

// NewGradeService creates a new grade service instance
func NewGradeService(grades GradeStore, teaching TeachingChecker) GradeService {
	return &gradeServiceImpl{
		grades:   grades,
		teaching: teaching,
	}
}

// UpsertGrade records component scores for one student in one course. The
// final score and letter grade are always computed here; whatever a client
// sends for them is ignored. Lecturers may only write grades for courses
// they have a schedule for.
func (s *gradeServiceImpl) UpsertGrade(ctx context.Context, id access.Identity, req *dto.UpsertGradeRequest) (*models.Grade, error) {
	switch id.Role {
	case models.RoleAdmin:
		// unrestricted
	case models.RoleLecturer:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		teaches, err := s.teaching.LecturerTeachesCourse(ctx, id.LinkedID, req.CourseID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrPermissionDenied
		}
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	assignment := scoreOrZero(req.Assignment)
	midterm := scoreOrZero(req.Midterm)
	finalExam := scoreOrZero(req.FinalExam)

	outcome, err := academics.ComputeGrade(assignment, midterm, finalExam)
	if err != nil {
		return nil, err
	}

	grade := &models.Grade{
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Assignment:   assignment,
		Midterm:      midterm,
		FinalExam:    finalExam,
		FinalScore:   outcome.FinalScore,
		LetterGrade:  outcome.LetterGrade,
	}

	if err := s.grades.UpsertGrade(ctx, grade); err != nil {
		return nil, err
	}

	return grade, nil
}

// GetGrade fetches a single grade row. Rows outside the caller's scope are
// reported as not found rather than forbidden.
func (s *gradeServiceImpl) GetGrade(ctx context.Context, id access.Identity, gradeID int64) (*models.Grade, error) {
	grade, err := s.grades.GetGradeByID(ctx, gradeID)
	if err != nil {
		return nil, err
	}

	switch id.Role {
	case models.RoleAdmin:
		return grade, nil
	case models.RoleStudent:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		if grade.StudentID != id.LinkedID {
			return nil, apperrors.ErrGradeNotFound
		}
		return grade, nil
	case models.RoleLecturer:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		teaches, err := s.teaching.LecturerTeachesCourse(ctx, id.LinkedID, grade.CourseID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrGradeNotFound
		}
		return grade, nil
	default:
		return nil, apperrors.ErrPermissionDenied
	}
}

// GetGrades lists grades matching the filter, intersected with the caller's
// scope. A student asking for another student's rows gets an empty list, not
// an error; the scope simply matches nothing.
func (s *gradeServiceImpl) GetGrades(ctx context.Context, id access.Identity, filter dto.GradeFilter) ([]*models.Grade, error) {
	scope, err := access.ScopeFilter(id, access.EntityGrade)
	if err != nil {
		return nil, err
	}

	return s.grades.GetGrades(ctx, repositories.GradeFilter{
		StudentID:    filter.StudentID,
		CourseID:     filter.CourseID,
		Semester:     filter.Semester,
		AcademicYear: filter.AcademicYear,
	}, scope)
}

// GetMyGrades is the student-facing transcript view: always the caller's own
// rows regardless of any requested filter.
func (s *gradeServiceImpl) GetMyGrades(ctx context.Context, id access.Identity, semester int, academicYear string) ([]*models.Grade, error) {
	if id.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	if id.LinkedID <= 0 {
		return nil, apperrors.ErrScopeUnresolved
	}

	scope, err := access.ScopeFilter(id, access.EntityGrade)
	if err != nil {
		return nil, err
	}

	return s.grades.GetGrades(ctx, repositories.GradeFilter{
		StudentID:    id.LinkedID,
		Semester:     semester,
		AcademicYear: academicYear,
	}, scope)
}

// DeleteGrade removes a grade row. Corrections by lecturers go through
// UpsertGrade; removal is an administrative action.
func (s *gradeServiceImpl) DeleteGrade(ctx context.Context, id access.Identity, gradeID int64) error {
	if !id.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}

	return s.grades.DeleteGrade(ctx, gradeID)
}

func scoreOrZero(score *float64) float64 {
	if score == nil {
		return 0
	}
	return *score
}
