package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/filestorage"
	"github.com/campuskit/siakad/internal/pkg/logger"
)

// AssignmentStore is the persistence surface the assignment service needs.
// The concrete repository satisfies it; tests substitute an in-memory store.
type AssignmentStore interface {
	CreateAssignment(ctx context.Context, assignment *models.Assignment) (int64, error)
	GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetAssignments(ctx context.Context, courseID int64, scope squirrel.Sqlizer) ([]*models.Assignment, error)
	UpdateAssignment(ctx context.Context, assignment *models.Assignment) error
	DeleteAssignment(ctx context.Context, id int64) error
}

// SubmissionStore is the persistence surface for student submissions.
type SubmissionStore interface {
	UpsertSubmission(ctx context.Context, submission *models.Submission) error
	GetSubmission(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error)
	GetSubmissionByID(ctx context.Context, id int64) (*models.Submission, error)
	GetSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.Submission, error)
	ScoreSubmission(ctx context.Context, id int64, score float64, notes *string) error
}

// ScheduleReader is the slice of schedule persistence the assignment service
// reads for ownership and visibility checks.
type ScheduleReader interface {
	TeachingChecker
	GetSchedules(ctx context.Context, filter repositories.ScheduleFilter, scope squirrel.Sqlizer) ([]*models.Schedule, error)
}

// AssignmentService defines the interface for assignment and submission
// operations
type AssignmentService interface {
	CreateAssignment(ctx context.Context, id access.Identity, req *dto.CreateAssignmentRequest) (*models.Assignment, error)
	GetAssignmentByID(ctx context.Context, id access.Identity, assignmentID int64) (*models.Assignment, error)
	GetAssignments(ctx context.Context, id access.Identity, courseID int64) ([]*models.Assignment, error)
	UpdateAssignment(ctx context.Context, id access.Identity, assignmentID int64, req *dto.UpdateAssignmentRequest) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id access.Identity, assignmentID int64) error

	SubmitAssignment(ctx context.Context, id access.Identity, assignmentID int64, file *multipart.FileHeader) (*models.Submission, error)
	GetSubmissions(ctx context.Context, id access.Identity, assignmentID int64) ([]*models.Submission, error)
	GetMySubmission(ctx context.Context, id access.Identity, assignmentID int64) (*models.Submission, error)
	ScoreSubmission(ctx context.Context, id access.Identity, submissionID int64, req *dto.ScoreSubmissionRequest) error
}

type assignmentServiceImpl struct {
	assignments AssignmentStore
	submissions SubmissionStore
	schedules   ScheduleReader
	students    StudentReader
	storage     filestorage.FileStorage
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(
	assignments AssignmentStore,
	submissions SubmissionStore,
	schedules ScheduleReader,
	students StudentReader,
	storage filestorage.FileStorage,
) AssignmentService {
	return &assignmentServiceImpl{
		assignments: assignments,
		submissions: submissions,
		schedules:   schedules,
		students:    students,
		storage:     storage,
	}
}

// CreateAssignment publishes an assignment for a course. Lecturers publish
// as themselves; admins must name the lecturer the assignment belongs to.
// Either way the lecturer must have a schedule for the course.
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, id access.Identity, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid deadline, expected RFC 3339", apperrors.ErrValidationFailed)
	}

	var lecturerID int64
	switch id.Role {
	case models.RoleAdmin:
		if req.LecturerID <= 0 {
			return nil, fmt.Errorf("%w: lecturerId is required", apperrors.ErrValidationFailed)
		}
		lecturerID = req.LecturerID
	case models.RoleLecturer:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		lecturerID = id.LinkedID
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	teaches, err := s.schedules.LecturerTeachesCourse(ctx, lecturerID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !teaches {
		if id.Role == models.RoleAdmin {
			return nil, fmt.Errorf("%w: lecturer %d has no schedule for course %d", apperrors.ErrValidationFailed, lecturerID, req.CourseID)
		}
		return nil, apperrors.ErrPermissionDenied
	}

	assignment := &models.Assignment{
		CourseID:    req.CourseID,
		LecturerID:  lecturerID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
	}

	assignmentID, err := s.assignments.CreateAssignment(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = assignmentID

	return assignment, nil
}

// GetAssignmentByID retrieves an assignment the identity may see
func (s *assignmentServiceImpl) GetAssignmentByID(ctx context.Context, id access.Identity, assignmentID int64) (*models.Assignment, error) {
	assignment, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	switch id.Role {
	case models.RoleAdmin:
		return assignment, nil
	case models.RoleLecturer:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		if assignment.LecturerID != id.LinkedID {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return assignment, nil
	case models.RoleStudent:
		if err := s.studentTakesCourse(ctx, id, assignment.CourseID); err != nil {
			return nil, err
		}
		return assignment, nil
	default:
		return nil, apperrors.ErrPermissionDenied
	}
}

// studentTakesCourse checks the student's class has a schedule for the course
func (s *assignmentServiceImpl) studentTakesCourse(ctx context.Context, id access.Identity, courseID int64) error {
	if id.LinkedID <= 0 {
		return apperrors.ErrScopeUnresolved
	}
	student, err := s.students.GetStudentByID(ctx, id.LinkedID)
	if err != nil {
		return err
	}
	if student.ClassID == nil {
		return apperrors.ErrAssignmentNotFound
	}

	schedules, err := s.schedules.GetSchedules(ctx, repositories.ScheduleFilter{ClassID: *student.ClassID, Weekday: -1}, nil)
	if err != nil {
		return err
	}
	for _, schedule := range schedules {
		if schedule.CourseID == courseID {
			return nil
		}
	}
	return apperrors.ErrAssignmentNotFound
}

// GetAssignments lists assignments visible to the identity, optionally for
// one course. Students see assignments of courses scheduled for their class.
func (s *assignmentServiceImpl) GetAssignments(ctx context.Context, id access.Identity, courseID int64) ([]*models.Assignment, error) {
	if id.Role == models.RoleStudent {
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		student, err := s.students.GetStudentByID(ctx, id.LinkedID)
		if err != nil {
			return nil, err
		}
		if student.ClassID == nil {
			return []*models.Assignment{}, nil
		}

		schedules, err := s.schedules.GetSchedules(ctx, repositories.ScheduleFilter{ClassID: *student.ClassID, Weekday: -1}, nil)
		if err != nil {
			return nil, err
		}
		courseIDs := map[int64]bool{}
		for _, schedule := range schedules {
			courseIDs[schedule.CourseID] = true
		}

		all, err := s.assignments.GetAssignments(ctx, courseID, nil)
		if err != nil {
			return nil, err
		}
		visible := []*models.Assignment{}
		for _, assignment := range all {
			if courseIDs[assignment.CourseID] {
				visible = append(visible, assignment)
			}
		}
		return visible, nil
	}

	scope, err := access.ScopeFilter(id, access.EntityAssignment)
	if err != nil {
		return nil, err
	}
	return s.assignments.GetAssignments(ctx, courseID, scope)
}

// UpdateAssignment updates an assignment owned by the caller
func (s *assignmentServiceImpl) UpdateAssignment(ctx context.Context, id access.Identity, assignmentID int64, req *dto.UpdateAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwnLecturer(id, assignment.LecturerID); err != nil {
		return nil, err
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid deadline, expected RFC 3339", apperrors.ErrValidationFailed)
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.Deadline = deadline

	if err := s.assignments.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// DeleteAssignment deletes an assignment owned by the caller
func (s *assignmentServiceImpl) DeleteAssignment(ctx context.Context, id access.Identity, assignmentID int64) error {
	assignment, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if err := access.RequireOwnLecturer(id, assignment.LecturerID); err != nil {
		return err
	}
	return s.assignments.DeleteAssignment(ctx, assignmentID)
}

// SubmitAssignment stores a student's file for an assignment. Submissions
// after the deadline are rejected; re-submitting before the deadline replaces
// the file and clears any earlier score.
func (s *assignmentServiceImpl) SubmitAssignment(ctx context.Context, id access.Identity, assignmentID int64, file *multipart.FileHeader) (*models.Submission, error) {
	if id.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	if id.LinkedID <= 0 {
		return nil, apperrors.ErrScopeUnresolved
	}

	assignment, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.studentTakesCourse(ctx, id, assignment.CourseID); err != nil {
		return nil, err
	}

	if time.Now().After(assignment.Deadline) {
		return nil, apperrors.ErrDeadlinePassed
	}

	filePath, err := s.storage.SaveFileWithPath(file, "submissions")
	if err != nil {
		return nil, fmt.Errorf("failed to store submission file: %w", err)
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    id.LinkedID,
		FilePath:     filePath,
	}
	if err := s.submissions.UpsertSubmission(ctx, submission); err != nil {
		// The row failed, drop the orphaned file
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", filePath).Msg("Failed to remove orphaned submission file")
		}
		return nil, err
	}

	return submission, nil
}

// GetSubmissions lists the submissions for an assignment owned by the caller
func (s *assignmentServiceImpl) GetSubmissions(ctx context.Context, id access.Identity, assignmentID int64) ([]*models.Submission, error) {
	assignment, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwnLecturer(id, assignment.LecturerID); err != nil {
		return nil, err
	}
	return s.submissions.GetSubmissionsByAssignment(ctx, assignmentID)
}

// GetMySubmission retrieves the caller's own submission for an assignment
func (s *assignmentServiceImpl) GetMySubmission(ctx context.Context, id access.Identity, assignmentID int64) (*models.Submission, error) {
	if id.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	if id.LinkedID <= 0 {
		return nil, apperrors.ErrScopeUnresolved
	}
	return s.submissions.GetSubmission(ctx, assignmentID, id.LinkedID)
}

// ScoreSubmission records the lecturer's review on a submission of their own
// assignment
func (s *assignmentServiceImpl) ScoreSubmission(ctx context.Context, id access.Identity, submissionID int64, req *dto.ScoreSubmissionRequest) error {
	if req.Score < 0 || req.Score > 100 {
		return fmt.Errorf("%w: score must be between 0 and 100", apperrors.ErrValidationFailed)
	}

	submission, err := s.submissions.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return err
	}
	assignment, err := s.assignments.GetAssignmentByID(ctx, submission.AssignmentID)
	if err != nil {
		return err
	}
	if err := access.RequireOwnLecturer(id, assignment.LecturerID); err != nil {
		return err
	}

	var notes *string
	if strings.TrimSpace(req.Notes) != "" {
		notes = &req.Notes
	}
	return s.submissions.ScoreSubmission(ctx, submissionID, req.Score, notes)
}
