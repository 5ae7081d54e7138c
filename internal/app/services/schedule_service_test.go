package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// fakeScheduleStore keeps slots in memory and answers room conflicts with
// the same predicate the SQL store uses: two slots clash when they share a
// weekday and room and their half-open time windows intersect.
type fakeScheduleStore struct {
	schedules []*models.Schedule
	nextID    int64
}

func (f *fakeScheduleStore) CreateSchedule(_ context.Context, schedule *models.Schedule) (int64, error) {
	f.nextID++
	schedule.ID = f.nextID
	stored := *schedule
	f.schedules = append(f.schedules, &stored)
	return schedule.ID, nil
}

func (f *fakeScheduleStore) GetScheduleByID(_ context.Context, id int64) (*models.Schedule, error) {
	for _, schedule := range f.schedules {
		if schedule.ID == id {
			found := *schedule
			return &found, nil
		}
	}
	return nil, apperrors.ErrScheduleNotFound
}

func (f *fakeScheduleStore) GetSchedules(_ context.Context, filter repositories.ScheduleFilter, _ squirrel.Sqlizer) ([]*models.Schedule, error) {
	var out []*models.Schedule
	for _, schedule := range f.schedules {
		if filter.ClassID > 0 && schedule.ClassID != filter.ClassID {
			continue
		}
		if filter.LecturerID > 0 && schedule.LecturerID != filter.LecturerID {
			continue
		}
		if filter.Weekday >= 0 && schedule.Weekday != filter.Weekday {
			continue
		}
		found := *schedule
		out = append(out, &found)
	}
	return out, nil
}

func (f *fakeScheduleStore) UpdateSchedule(_ context.Context, schedule *models.Schedule) error {
	for i, existing := range f.schedules {
		if existing.ID == schedule.ID {
			stored := *schedule
			f.schedules[i] = &stored
			return nil
		}
	}
	return apperrors.ErrScheduleNotFound
}

func (f *fakeScheduleStore) DeleteSchedule(_ context.Context, id int64) error {
	for i, existing := range f.schedules {
		if existing.ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrScheduleNotFound
}

func (f *fakeScheduleStore) RoomConflictExists(_ context.Context, schedule *models.Schedule) (bool, error) {
	for _, existing := range f.schedules {
		if schedule.ID > 0 && existing.ID == schedule.ID {
			continue
		}
		if existing.Weekday != schedule.Weekday || existing.Room != schedule.Room {
			continue
		}
		// Zero-padded HH:MM strings compare chronologically.
		if schedule.StartTime < existing.EndTime && schedule.EndTime > existing.StartTime {
			return true, nil
		}
	}
	return false, nil
}

// Reference readers that accept any ID, keeping the tests on the conflict
// rule rather than on referential checks.
type fakeClassReader struct{}

func (fakeClassReader) GetClassByID(_ context.Context, id int64) (*models.Class, error) {
	return &models.Class{ID: id}, nil
}

type fakeCourseReader struct{}

func (fakeCourseReader) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

type fakeLecturerReader struct{}

func (fakeLecturerReader) GetLecturerByID(_ context.Context, id int64) (*models.Lecturer, error) {
	return &models.Lecturer{ID: id}, nil
}

type fakeStudentReader struct{}

func (fakeStudentReader) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	return &models.Student{ID: id}, nil
}

func newScheduleSvc(store *fakeScheduleStore) ScheduleService {
	return NewScheduleService(store, fakeClassReader{}, fakeCourseReader{}, fakeLecturerReader{}, fakeStudentReader{})
}

func slot(weekday int, start, end, room string) *models.Schedule {
	return &models.Schedule{
		ClassID:    1,
		CourseID:   1,
		LecturerID: 1,
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
		Room:       room,
	}
}

func TestCreateScheduleRoomConflicts(t *testing.T) {
	// The seeded slot occupies R2.04 on Monday from 08:00 to 10:00.
	tests := []struct {
		name     string
		schedule *models.Schedule
		conflict bool
	}{
		{"same window", slot(1, "08:00", "10:00", "R2.04"), true},
		{"overlaps the start", slot(1, "07:00", "08:30", "R2.04"), true},
		{"overlaps the end", slot(1, "09:30", "11:00", "R2.04"), true},
		{"contained within", slot(1, "08:30", "09:30", "R2.04"), true},
		{"spans the whole slot", slot(1, "07:00", "11:00", "R2.04"), true},
		{"back to back after", slot(1, "10:00", "12:00", "R2.04"), false},
		{"back to back before", slot(1, "06:00", "08:00", "R2.04"), false},
		{"different room", slot(1, "08:00", "10:00", "R2.05"), false},
		{"different weekday", slot(2, "08:00", "10:00", "R2.04"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeScheduleStore{}
			svc := newScheduleSvc(store)
			_, err := svc.CreateSchedule(context.Background(), slot(1, "08:00", "10:00", "R2.04"))
			require.NoError(t, err)

			_, err = svc.CreateSchedule(context.Background(), tt.schedule)
			if tt.conflict {
				assert.True(t, errors.Is(err, apperrors.ErrScheduleRoomTaken))
				assert.Len(t, store.schedules, 1)
			} else {
				assert.NoError(t, err)
				assert.Len(t, store.schedules, 2)
			}
		})
	}
}

func TestUpdateScheduleIgnoresItsOwnSlot(t *testing.T) {
	store := &fakeScheduleStore{}
	svc := newScheduleSvc(store)

	id, err := svc.CreateSchedule(context.Background(), slot(1, "08:00", "10:00", "R2.04"))
	require.NoError(t, err)
	_, err = svc.CreateSchedule(context.Background(), slot(1, "10:00", "12:00", "R2.04"))
	require.NoError(t, err)

	// Shrinking a slot within its own window does not conflict with itself.
	updated := slot(1, "08:30", "09:30", "R2.04")
	updated.ID = id
	require.NoError(t, svc.UpdateSchedule(context.Background(), updated))

	// Moving it onto the neighbouring slot still conflicts.
	moved := slot(1, "09:00", "11:00", "R2.04")
	moved.ID = id
	err = svc.UpdateSchedule(context.Background(), moved)
	assert.True(t, errors.Is(err, apperrors.ErrScheduleRoomTaken))
}

func TestCreateScheduleValidation(t *testing.T) {
	svc := newScheduleSvc(&fakeScheduleStore{})

	_, err := svc.CreateSchedule(context.Background(), slot(7, "08:00", "10:00", "R2.04"))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.CreateSchedule(context.Background(), slot(1, "10:00", "08:00", "R2.04"))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.CreateSchedule(context.Background(), slot(1, "8am", "10:00", "R2.04"))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.CreateSchedule(context.Background(), slot(1, "08:00", "10:00", "   "))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}
