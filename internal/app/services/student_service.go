package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/db"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/auth"
)

// StudentService defines the interface for student management
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id access.Identity, studentID int64) (*models.Student, error)
	GetStudents(ctx context.Context, filter repositories.StudentFilter, page, size int) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	database    *db.PostgresDB
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	programRepo *repositories.ProgramRepository
	classRepo   *repositories.ClassRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(
	database *db.PostgresDB,
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	programRepo *repositories.ProgramRepository,
	classRepo *repositories.ClassRepository,
) StudentService {
	return &studentServiceImpl{
		database:    database,
		userRepo:    userRepo,
		studentRepo: studentRepo,
		programRepo: programRepo,
		classRepo:   classRepo,
	}
}

// validateClassAssignment checks that an assigned class exists and belongs to
// the student's program.
func (s *studentServiceImpl) validateClassAssignment(ctx context.Context, classID *int64, programID int64) error {
	if classID == nil {
		return nil
	}
	class, err := s.classRepo.GetClassByID(ctx, *classID)
	if err != nil {
		return err
	}
	if class.ProgramID != programID {
		return fmt.Errorf("%w: class belongs to a different program", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateStudent creates the account and the student record in one
// transaction, so there is never an account without its student row.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if !isDigits(req.NIM) {
		return nil, fmt.Errorf("%w: nim must be numeric", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.programRepo.GetProgramByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}
	if err := s.validateClassAssignment(ctx, req.ClassID, req.ProgramID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		NIM:        req.NIM,
		Name:       req.Name,
		ProgramID:  req.ProgramID,
		ClassID:    req.ClassID,
		CohortYear: req.CohortYear,
		Sex:        req.Sex,
		Address:    req.Address,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user := &models.User{
			Email:    req.Email,
			Password: hash,
			FullName: req.Name,
			Role:     models.RoleStudent,
			IsActive: true,
		}
		userID, err := s.userRepo.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}

		student.UserID = userID
		studentID, err := s.studentRepo.CreateStudent(ctx, tx, student)
		if err != nil {
			return err
		}
		student.ID = studentID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return student, nil
}

// GetStudentByID retrieves a student record. Students may only read their
// own record; the student profile carries personal fields that other
// students have no business seeing.
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id access.Identity, studentID int64) (*models.Student, error) {
	if id.Role == models.RoleStudent {
		if err := access.RequireOwnStudent(id, studentID); err != nil {
			return nil, err
		}
	}
	return s.studentRepo.GetStudentByID(ctx, studentID)
}

// GetStudents retrieves a filtered page of students with the total count
func (s *studentServiceImpl) GetStudents(ctx context.Context, filter repositories.StudentFilter, page, size int) ([]*models.Student, int64, error) {
	offset, limit := pageWindow(page, size)
	return s.studentRepo.GetStudents(ctx, filter, offset, limit)
}

// UpdateStudent updates the mutable student fields
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if !isDigits(req.NIM) {
		return nil, fmt.Errorf("%w: nim must be numeric", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateClassAssignment(ctx, req.ClassID, req.ProgramID); err != nil {
		return nil, err
	}

	student.NIM = req.NIM
	student.Name = req.Name
	student.ProgramID = req.ProgramID
	student.ClassID = req.ClassID
	student.CohortYear = req.CohortYear
	student.Sex = req.Sex
	student.Address = req.Address

	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes the student by deleting its account; the student row
// and its attendance, grades and submissions cascade away.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.userRepo.DeleteUser(ctx, tx, student.UserID)
	})
}
