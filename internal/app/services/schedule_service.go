package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/helpers"
)

// ScheduleStore is the persistence surface the schedule service needs. The
// concrete repository satisfies it; tests substitute an in-memory store.
type ScheduleStore interface {
	CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error)
	GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error)
	GetSchedules(ctx context.Context, filter repositories.ScheduleFilter, scope squirrel.Sqlizer) ([]*models.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule *models.Schedule) error
	DeleteSchedule(ctx context.Context, id int64) error
	RoomConflictExists(ctx context.Context, schedule *models.Schedule) (bool, error)
}

// Reference lookups a schedule slot is validated against. Each is satisfied
// by the corresponding repository.
type ClassReader interface {
	GetClassByID(ctx context.Context, id int64) (*models.Class, error)
}

type CourseReader interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
}

type LecturerReader interface {
	GetLecturerByID(ctx context.Context, id int64) (*models.Lecturer, error)
}

type StudentReader interface {
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
}

// ScheduleService defines the interface for schedule operations
type ScheduleService interface {
	CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error)
	GetScheduleByID(ctx context.Context, id access.Identity, scheduleID int64) (*models.Schedule, error)
	GetSchedules(ctx context.Context, id access.Identity, filter repositories.ScheduleFilter) ([]*models.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule *models.Schedule) error
	DeleteSchedule(ctx context.Context, scheduleID int64) error
}

type scheduleServiceImpl struct {
	schedules ScheduleStore
	classes   ClassReader
	courses   CourseReader
	lecturers LecturerReader
	students  StudentReader
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(
	schedules ScheduleStore,
	classes ClassReader,
	courses CourseReader,
	lecturers LecturerReader,
	students StudentReader,
) ScheduleService {
	return &scheduleServiceImpl{
		schedules: schedules,
		classes:   classes,
		courses:   courses,
		lecturers: lecturers,
		students:  students,
	}
}

// validateSchedule checks the time window and that all referenced records
// exist.
func (s *scheduleServiceImpl) validateSchedule(ctx context.Context, schedule *models.Schedule) error {
	if schedule.Weekday < 0 || schedule.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be between 0 and 6", apperrors.ErrValidationFailed)
	}

	start, err := helpers.ParseClock(schedule.StartTime)
	if err != nil {
		return fmt.Errorf("%w: invalid start time", apperrors.ErrValidationFailed)
	}
	end, err := helpers.ParseClock(schedule.EndTime)
	if err != nil {
		return fmt.Errorf("%w: invalid end time", apperrors.ErrValidationFailed)
	}
	if start >= end {
		return fmt.Errorf("%w: start time must be before end time", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(schedule.Room) == "" {
		return fmt.Errorf("%w: room cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.classes.GetClassByID(ctx, schedule.ClassID); err != nil {
		return err
	}
	if _, err := s.courses.GetCourseByID(ctx, schedule.CourseID); err != nil {
		return err
	}
	if _, err := s.lecturers.GetLecturerByID(ctx, schedule.LecturerID); err != nil {
		return err
	}

	return nil
}

// CreateSchedule creates a schedule slot after checking the room is free
func (s *scheduleServiceImpl) CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error) {
	if err := s.validateSchedule(ctx, schedule); err != nil {
		return 0, err
	}

	taken, err := s.schedules.RoomConflictExists(ctx, schedule)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, apperrors.ErrScheduleRoomTaken
	}

	return s.schedules.CreateSchedule(ctx, schedule)
}

// GetScheduleByID retrieves a schedule the identity is allowed to see
func (s *scheduleServiceImpl) GetScheduleByID(ctx context.Context, id access.Identity, scheduleID int64) (*models.Schedule, error) {
	schedule, err := s.schedules.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	// Row-level visibility: lecturers see their own slots, students their
	// class's slots.
	switch id.Role {
	case models.RoleAdmin:
		return schedule, nil
	case models.RoleLecturer:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		if schedule.LecturerID != id.LinkedID {
			return nil, apperrors.ErrScheduleNotFound
		}
		return schedule, nil
	case models.RoleStudent:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		student, err := s.students.GetStudentByID(ctx, id.LinkedID)
		if err != nil {
			return nil, err
		}
		if student.ClassID == nil || *student.ClassID != schedule.ClassID {
			return nil, apperrors.ErrScheduleNotFound
		}
		return schedule, nil
	default:
		return nil, apperrors.ErrPermissionDenied
	}
}

// GetSchedules lists schedules the identity may see, narrowed by the filter
func (s *scheduleServiceImpl) GetSchedules(ctx context.Context, id access.Identity, filter repositories.ScheduleFilter) ([]*models.Schedule, error) {
	scope, err := access.ScopeFilter(id, access.EntitySchedule)
	if err != nil {
		return nil, err
	}
	return s.schedules.GetSchedules(ctx, filter, scope)
}

// UpdateSchedule updates a schedule slot after re-checking the room
func (s *scheduleServiceImpl) UpdateSchedule(ctx context.Context, schedule *models.Schedule) error {
	if err := s.validateSchedule(ctx, schedule); err != nil {
		return err
	}

	taken, err := s.schedules.RoomConflictExists(ctx, schedule)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrScheduleRoomTaken
	}

	return s.schedules.UpdateSchedule(ctx, schedule)
}

// DeleteSchedule deletes a schedule slot
func (s *scheduleServiceImpl) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	return s.schedules.DeleteSchedule(ctx, scheduleID)
}
