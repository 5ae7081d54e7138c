package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

type fakeAssignmentStore struct {
	assignments []*models.Assignment
	nextID      int64
}

func (f *fakeAssignmentStore) CreateAssignment(_ context.Context, assignment *models.Assignment) (int64, error) {
	f.nextID++
	assignment.ID = f.nextID
	stored := *assignment
	f.assignments = append(f.assignments, &stored)
	return assignment.ID, nil
}

func (f *fakeAssignmentStore) GetAssignmentByID(_ context.Context, id int64) (*models.Assignment, error) {
	for _, assignment := range f.assignments {
		if assignment.ID == id {
			found := *assignment
			return &found, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (f *fakeAssignmentStore) GetAssignments(_ context.Context, courseID int64, _ squirrel.Sqlizer) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, assignment := range f.assignments {
		if courseID > 0 && assignment.CourseID != courseID {
			continue
		}
		found := *assignment
		out = append(out, &found)
	}
	return out, nil
}

func (f *fakeAssignmentStore) UpdateAssignment(_ context.Context, assignment *models.Assignment) error {
	for i, existing := range f.assignments {
		if existing.ID == assignment.ID {
			stored := *assignment
			f.assignments[i] = &stored
			return nil
		}
	}
	return apperrors.ErrAssignmentNotFound
}

func (f *fakeAssignmentStore) DeleteAssignment(_ context.Context, id int64) error {
	for i, existing := range f.assignments {
		if existing.ID == id {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAssignmentNotFound
}

// fakeTeachingSchedules answers teaching checks from a fixed set of
// lecturer and course pairs.
type fakeTeachingSchedules struct {
	teaching map[[2]int64]bool
}

func (f *fakeTeachingSchedules) LecturerTeachesCourse(_ context.Context, lecturerID, courseID int64) (bool, error) {
	return f.teaching[[2]int64{lecturerID, courseID}], nil
}

func (f *fakeTeachingSchedules) GetSchedules(_ context.Context, _ repositories.ScheduleFilter, _ squirrel.Sqlizer) ([]*models.Schedule, error) {
	return nil, nil
}

func newAssignmentSvc(store *fakeAssignmentStore, teaching map[[2]int64]bool) AssignmentService {
	return NewAssignmentService(store, nil, &fakeTeachingSchedules{teaching: teaching}, nil, nil)
}

func createReq(courseID, lecturerID int64) *dto.CreateAssignmentRequest {
	return &dto.CreateAssignmentRequest{
		CourseID:   courseID,
		Title:      "Week 3 problem set",
		Deadline:   "2030-01-01T23:59:00Z",
		LecturerID: lecturerID,
	}
}

func TestCreateAssignmentAdminNamesLecturer(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := newAssignmentSvc(store, map[[2]int64]bool{{5, 1}: true})
	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}

	// Admin accounts have no lecturer record of their own, so an assignment
	// created without naming one has no valid owner and must be rejected
	// before it reaches the database.
	_, err := svc.CreateAssignment(context.Background(), admin, createReq(1, 0))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Empty(t, store.assignments)

	// Naming a lecturer with no schedule for the course is rejected too.
	_, err = svc.CreateAssignment(context.Background(), admin, createReq(1, 9))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Empty(t, store.assignments)

	assignment, err := svc.CreateAssignment(context.Background(), admin, createReq(1, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), assignment.LecturerID)
}

func TestCreateAssignmentLecturerPublishesAsSelf(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := newAssignmentSvc(store, map[[2]int64]bool{{5, 1}: true})
	lecturer := access.Identity{UserID: 7, Role: models.RoleLecturer, LinkedID: 5}

	assignment, err := svc.CreateAssignment(context.Background(), lecturer, createReq(1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(5), assignment.LecturerID)

	// A course the lecturer has no schedule for is off limits.
	_, err = svc.CreateAssignment(context.Background(), lecturer, createReq(2, 0))
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	orphan := access.Identity{UserID: 8, Role: models.RoleLecturer}
	_, err = svc.CreateAssignment(context.Background(), orphan, createReq(1, 0))
	assert.True(t, errors.Is(err, apperrors.ErrScopeUnresolved))

	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	_, err = svc.CreateAssignment(context.Background(), student, createReq(1, 0))
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}
