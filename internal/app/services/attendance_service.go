package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/siakad/internal/app/academics"
	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/db"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/helpers"
)

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	RecordMeeting(ctx context.Context, id access.Identity, scheduleID int64, req *dto.RecordAttendanceRequest) ([]*models.Attendance, error)
	GetMeetingAttendance(ctx context.Context, id access.Identity, scheduleID int64, date string) ([]*models.Attendance, error)
	GetStudentAttendance(ctx context.Context, id access.Identity, studentID, courseID int64) ([]*models.Attendance, error)
	GetStudentSummary(ctx context.Context, id access.Identity, studentID, courseID int64) (academics.AttendanceSummary, error)
}

type attendanceServiceImpl struct {
	database       *db.PostgresDB
	attendanceRepo *repositories.AttendanceRepository
	scheduleRepo   *repositories.ScheduleRepository
	studentRepo    *repositories.StudentRepository
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	database *db.PostgresDB,
	attendanceRepo *repositories.AttendanceRepository,
	scheduleRepo *repositories.ScheduleRepository,
	studentRepo *repositories.StudentRepository,
) AttendanceService {
	return &attendanceServiceImpl{
		database:       database,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		studentRepo:    studentRepo,
	}
}

// RecordMeeting stores the attendance sheet for one meeting of a schedule.
// Only the schedule's own lecturer (or an admin) may record; every entry must
// be a student of the scheduled class. The whole sheet commits atomically and
// re-recording a meeting replaces earlier statuses.
func (s *attendanceServiceImpl) RecordMeeting(ctx context.Context, id access.Identity, scheduleID int64, req *dto.RecordAttendanceRequest) ([]*models.Attendance, error) {
	schedule, err := s.scheduleRepo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireOwnLecturer(id, schedule.LecturerID); err != nil {
		return nil, err
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("%w: entries cannot be empty", apperrors.ErrValidationFailed)
	}

	classStudents, err := s.studentRepo.GetStudentsByClass(ctx, schedule.ClassID)
	if err != nil {
		return nil, err
	}
	inClass := make(map[int64]bool, len(classStudents))
	for _, student := range classStudents {
		inClass[student.ID] = true
	}

	records := make([]*models.Attendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		status := models.AttendanceStatus(entry.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidationFailed, entry.Status)
		}
		if !inClass[entry.StudentID] {
			return nil, fmt.Errorf("%w: student %d", apperrors.ErrStudentNotInClass, entry.StudentID)
		}
		records = append(records, &models.Attendance{
			ScheduleID: scheduleID,
			StudentID:  entry.StudentID,
			Date:       date,
			Status:     status,
		})
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, record := range records {
			if err := s.attendanceRepo.UpsertAttendance(ctx, tx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetMeetingAttendance retrieves the sheet for one meeting. Lecturers only
// see meetings of their own schedules.
func (s *attendanceServiceImpl) GetMeetingAttendance(ctx context.Context, id access.Identity, scheduleID int64, dateStr string) ([]*models.Attendance, error) {
	schedule, err := s.scheduleRepo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireOwnLecturer(id, schedule.LecturerID); err != nil {
		return nil, err
	}

	date, err := helpers.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	return s.attendanceRepo.GetMeetingAttendance(ctx, scheduleID, date)
}

// GetStudentAttendance retrieves a student's records within the caller's
// scope. Students can only reach their own rows; lecturers only rows from
// their schedules.
func (s *attendanceServiceImpl) GetStudentAttendance(ctx context.Context, id access.Identity, studentID, courseID int64) ([]*models.Attendance, error) {
	if _, err := s.studentRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	// A student probing another student's URL is denied outright rather than
	// shown an empty list.
	if id.Role == models.RoleStudent {
		if err := access.RequireOwnStudent(id, studentID); err != nil {
			return nil, err
		}
	}

	scope, err := access.ScopeFilter(id, access.EntityAttendance)
	if err != nil {
		return nil, err
	}

	return s.attendanceRepo.GetStudentAttendance(ctx, studentID, courseID, scope)
}

// GetStudentSummary aggregates a student's records into the per-status counts
// and presence percentage. The records are fetched through the same scope as
// GetStudentAttendance, so the summary never reveals rows the caller could
// not list.
func (s *attendanceServiceImpl) GetStudentSummary(ctx context.Context, id access.Identity, studentID, courseID int64) (academics.AttendanceSummary, error) {
	records, err := s.GetStudentAttendance(ctx, id, studentID, courseID)
	if err != nil {
		return academics.AttendanceSummary{}, err
	}

	flat := make([]models.Attendance, len(records))
	for i, rec := range records {
		flat[i] = *rec
	}
	return academics.SummarizeAttendance(flat), nil
}
