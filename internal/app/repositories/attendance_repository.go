package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/dberrors"
)

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// UpsertAttendance records a student's attendance for one meeting. Recording
// the same (schedule, student, date) again replaces the status.
func (r *AttendanceRepository) UpsertAttendance(ctx context.Context, runner DBTX, record *models.Attendance) error {
	sql, args, err := r.sb.Insert("attendance").
		Columns("schedule_id", "student_id", "date", "status").
		Values(record.ScheduleID, record.StudentID, record.Date, record.Status).
		Suffix("ON CONFLICT ON CONSTRAINT uq_attendance_meeting DO UPDATE SET status = EXCLUDED.status RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert attendance query: %w", err)
	}

	if err := runner.QueryRow(ctx, sql, args...).Scan(&record.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialIntegrity
		}
		return fmt.Errorf("error upserting attendance: %w", err)
	}

	return nil
}

// GetMeetingAttendance retrieves all records for one schedule on one date
func (r *AttendanceRepository) GetMeetingAttendance(ctx context.Context, scheduleID int64, date time.Time) ([]*models.Attendance, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.schedule_id", "a.student_id", "a.date", "a.status",
		"s.id", "s.user_id", "s.nim", "s.name", "s.program_id", "s.class_id", "s.cohort_year", "COALESCE(s.sex, '')", "COALESCE(s.address, '')").
		From("attendance a").
		Join("students s ON s.id = a.student_id").
		Where(squirrel.Eq{"a.schedule_id": scheduleID, "a.date": date}).
		OrderBy("s.nim ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build meeting attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying meeting attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		record := &models.Attendance{Student: &models.Student{}}
		if err := rows.Scan(
			&record.ID, &record.ScheduleID, &record.StudentID, &record.Date, &record.Status,
			&record.Student.ID, &record.Student.UserID, &record.Student.NIM, &record.Student.Name,
			&record.Student.ProgramID, &record.Student.ClassID, &record.Student.CohortYear,
			&record.Student.Sex, &record.Student.Address,
		); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}

	return records, nil
}

// GetStudentAttendance retrieves a student's records, optionally restricted
// to one course, further restricted by the caller's scope.
func (r *AttendanceRepository) GetStudentAttendance(ctx context.Context, studentID, courseID int64, scope squirrel.Sqlizer) ([]*models.Attendance, error) {
	builder := r.sb.Select(
		"attendance.id", "attendance.schedule_id", "attendance.student_id", "attendance.date", "attendance.status").
		From("attendance").
		Join("schedules sc ON sc.id = attendance.schedule_id").
		Where(squirrel.Eq{"attendance.student_id": studentID}).
		OrderBy("attendance.date ASC")
	if courseID > 0 {
		builder = builder.Where(squirrel.Eq{"sc.course_id": courseID})
	}
	if scope != nil {
		builder = builder.Where(scope)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying student attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		record := &models.Attendance{}
		if err := rows.Scan(
			&record.ID, &record.ScheduleID, &record.StudentID, &record.Date, &record.Status,
		); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}

	return records, nil
}

// GetStudentStatuses returns just the status column for a student, optionally
// restricted to one course. Summaries only need the statuses.
func (r *AttendanceRepository) GetStudentStatuses(ctx context.Context, studentID, courseID int64) ([]models.AttendanceStatus, error) {
	builder := r.sb.Select("attendance.status").
		From("attendance").
		Where(squirrel.Eq{"attendance.student_id": studentID})
	if courseID > 0 {
		builder = builder.
			Join("schedules sc ON sc.id = attendance.schedule_id").
			Where(squirrel.Eq{"sc.course_id": courseID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student statuses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying student statuses: %w", err)
	}
	defer rows.Close()

	statuses := []models.AttendanceStatus{}
	for rows.Next() {
		var status models.AttendanceStatus
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("error scanning status row: %w", err)
		}
		statuses = append(statuses, status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status rows: %w", err)
	}

	return statuses, nil
}
