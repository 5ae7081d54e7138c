package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/dberrors"
)

// ScheduleFilter narrows schedule listings.
type ScheduleFilter struct {
	ClassID    int64
	LecturerID int64
	Weekday    int // -1 means any weekday
}

// ScheduleRepository handles schedule database operations
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// RoomConflictExists reports whether another schedule occupies the same room
// on the same weekday with an overlapping time window. Times are zero-padded
// HH:MM strings, so string comparison is chronological.
func (r *ScheduleRepository) RoomConflictExists(ctx context.Context, schedule *models.Schedule) (bool, error) {
	builder := r.sb.Select("1").
		From("schedules").
		Where(squirrel.Eq{"weekday": schedule.Weekday, "room": schedule.Room}).
		Where(squirrel.Lt{"start_time": schedule.EndTime}).
		Where(squirrel.Gt{"end_time": schedule.StartTime}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1)
	if schedule.ID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": schedule.ID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build room conflict query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error checking room conflict: %w", err)
	}

	return exists, nil
}

// LecturerTeachesCourse reports whether the lecturer has at least one
// schedule for the course. Grade writes hang off this check.
func (r *ScheduleRepository) LecturerTeachesCourse(ctx context.Context, lecturerID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("schedules").
		Where(squirrel.Eq{"lecturer_id": lecturerID, "course_id": courseID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build teaches course query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error checking taught course: %w", err)
	}

	return exists, nil
}

// CreateSchedule creates a new schedule entry
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error) {
	sql, args, err := r.sb.Insert("schedules").
		Columns("class_id", "course_id", "lecturer_id", "weekday", "start_time", "end_time", "room").
		Values(
			schedule.ClassID, schedule.CourseID, schedule.LecturerID,
			schedule.Weekday, schedule.StartTime, schedule.EndTime, schedule.Room,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create schedule query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrReferentialIntegrity
		}
		return 0, fmt.Errorf("error creating schedule: %w", err)
	}

	return id, nil
}

// GetScheduleByID retrieves a schedule with course, class and lecturer preloaded
func (r *ScheduleRepository) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.class_id", "s.course_id", "s.lecturer_id",
		"s.weekday", "s.start_time", "s.end_time", "s.room",
		"c.id", "c.program_id", "c.code", "c.name", "c.credit_hours",
		"k.id", "k.program_id", "k.name", "k.cohort_year",
		"l.id", "l.user_id", "l.nidn", "l.name", "l.program_id").
		From("schedules s").
		Join("courses c ON c.id = s.course_id").
		Join("classes k ON k.id = s.class_id").
		Join("lecturers l ON l.id = s.lecturer_id").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schedule query: %w", err)
	}

	schedule := &models.Schedule{
		Course:   &models.Course{},
		Class:    &models.Class{},
		Lecturer: &models.Lecturer{},
	}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&schedule.ID, &schedule.ClassID, &schedule.CourseID, &schedule.LecturerID,
		&schedule.Weekday, &schedule.StartTime, &schedule.EndTime, &schedule.Room,
		&schedule.Course.ID, &schedule.Course.ProgramID, &schedule.Course.Code, &schedule.Course.Name, &schedule.Course.CreditHours,
		&schedule.Class.ID, &schedule.Class.ProgramID, &schedule.Class.Name, &schedule.Class.CohortYear,
		&schedule.Lecturer.ID, &schedule.Lecturer.UserID, &schedule.Lecturer.NIDN, &schedule.Lecturer.Name, &schedule.Lecturer.ProgramID,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrScheduleNotFound)
	}

	return schedule, nil
}

// GetSchedules retrieves schedules matching the filter, further restricted by
// the caller's scope. A nil scope means unrestricted.
func (r *ScheduleRepository) GetSchedules(ctx context.Context, filter ScheduleFilter, scope squirrel.Sqlizer) ([]*models.Schedule, error) {
	builder := r.sb.Select(
		"schedules.id", "schedules.class_id", "schedules.course_id", "schedules.lecturer_id",
		"schedules.weekday", "schedules.start_time", "schedules.end_time", "schedules.room",
		"c.code", "c.name",
		"k.name",
		"l.name").
		From("schedules").
		Join("courses c ON c.id = schedules.course_id").
		Join("classes k ON k.id = schedules.class_id").
		Join("lecturers l ON l.id = schedules.lecturer_id").
		OrderBy("schedules.weekday ASC", "schedules.start_time ASC")

	if filter.ClassID > 0 {
		builder = builder.Where(squirrel.Eq{"schedules.class_id": filter.ClassID})
	}
	if filter.LecturerID > 0 {
		builder = builder.Where(squirrel.Eq{"schedules.lecturer_id": filter.LecturerID})
	}
	if filter.Weekday >= 0 {
		builder = builder.Where(squirrel.Eq{"schedules.weekday": filter.Weekday})
	}
	if scope != nil {
		builder = builder.Where(scope)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schedules query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying schedules: %w", err)
	}
	defer rows.Close()

	schedules := []*models.Schedule{}
	for rows.Next() {
		schedule := &models.Schedule{
			Course:   &models.Course{},
			Class:    &models.Class{},
			Lecturer: &models.Lecturer{},
		}
		if err := rows.Scan(
			&schedule.ID, &schedule.ClassID, &schedule.CourseID, &schedule.LecturerID,
			&schedule.Weekday, &schedule.StartTime, &schedule.EndTime, &schedule.Room,
			&schedule.Course.Code, &schedule.Course.Name,
			&schedule.Class.Name,
			&schedule.Lecturer.Name,
		); err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}

	return schedules, nil
}

// UpdateSchedule updates an existing schedule entry
func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, schedule *models.Schedule) error {
	sql, args, err := r.sb.Update("schedules").
		SetMap(map[string]interface{}{
			"class_id":    schedule.ClassID,
			"course_id":   schedule.CourseID,
			"lecturer_id": schedule.LecturerID,
			"weekday":     schedule.Weekday,
			"start_time":  schedule.StartTime,
			"end_time":    schedule.EndTime,
			"room":        schedule.Room,
		}).
		Where(squirrel.Eq{"id": schedule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update schedule query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferentialIntegrity
		}
		return fmt.Errorf("error updating schedule: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}

// DeleteSchedule deletes a schedule entry. Attendance rows cascade away with
// it.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete schedule query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting schedule: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}
