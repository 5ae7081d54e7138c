package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

func admin() Identity    { return Identity{UserID: 1, Role: models.RoleAdmin} }
func lecturer() Identity { return Identity{UserID: 2, Role: models.RoleLecturer, LinkedID: 10} }
func student() Identity  { return Identity{UserID: 3, Role: models.RoleStudent, LinkedID: 20} }

func TestScopeFilterAdminUnrestricted(t *testing.T) {
	for _, entity := range []Entity{EntitySchedule, EntityAttendance, EntityGrade, EntityAssignment, EntitySubmission} {
		filter, err := ScopeFilter(admin(), entity)
		require.NoError(t, err)
		assert.Nil(t, filter, "admin scope for %s must be a no-op", entity)
	}
}

func TestScopeFilterStudentOwnRowsOnly(t *testing.T) {
	tests := []struct {
		entity   Entity
		wantSQL  string
		wantArgs []interface{}
	}{
		{EntityAttendance, "attendance.student_id = ?", []interface{}{int64(20)}},
		{EntityGrade, "grades.student_id = ?", []interface{}{int64(20)}},
		{EntitySubmission, "submissions.student_id = ?", []interface{}{int64(20)}},
		{EntitySchedule, "schedules.class_id = (SELECT class_id FROM students WHERE id = ?)", []interface{}{int64(20)}},
	}
	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			filter, err := ScopeFilter(student(), tt.entity)
			require.NoError(t, err)
			sql, args, err := filter.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestScopeFilterStudentIsolation(t *testing.T) {
	// Two students must never share a grade scope: the derived filters pin
	// different student ids.
	studentA := Identity{UserID: 3, Role: models.RoleStudent, LinkedID: 20}
	studentB := Identity{UserID: 4, Role: models.RoleStudent, LinkedID: 21}

	filterA, err := ScopeFilter(studentA, EntityGrade)
	require.NoError(t, err)
	filterB, err := ScopeFilter(studentB, EntityGrade)
	require.NoError(t, err)

	_, argsA, err := filterA.ToSql()
	require.NoError(t, err)
	_, argsB, err := filterB.ToSql()
	require.NoError(t, err)
	assert.NotEqual(t, argsA, argsB)
	assert.Equal(t, []interface{}{int64(20)}, argsA)
	assert.Equal(t, []interface{}{int64(21)}, argsB)
}

func TestScopeFilterLecturerOwnership(t *testing.T) {
	filter, err := ScopeFilter(lecturer(), EntitySchedule)
	require.NoError(t, err)
	sql, args, err := filter.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "schedules.lecturer_id = ?", sql)
	assert.Equal(t, []interface{}{int64(10)}, args)

	filter, err = ScopeFilter(lecturer(), EntityGrade)
	require.NoError(t, err)
	sql, args, err = filter.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "grades.course_id IN")
	assert.Equal(t, []interface{}{int64(10)}, args)
}

func TestScopeFilterFailsClosed(t *testing.T) {
	// A role that requires a linked record but has none is denied outright,
	// never silently narrowed to an empty result.
	orphanStudent := Identity{UserID: 5, Role: models.RoleStudent, LinkedID: 0}
	orphanLecturer := Identity{UserID: 6, Role: models.RoleLecturer, LinkedID: 0}

	for _, id := range []Identity{orphanStudent, orphanLecturer} {
		filter, err := ScopeFilter(id, EntityGrade)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrScopeUnresolved))
		assert.Nil(t, filter)
	}

	unknown := Identity{UserID: 7, Role: models.RoleType("GHOST"), LinkedID: 1}
	_, err := ScopeFilter(unknown, EntityGrade)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestRequireOwnStudent(t *testing.T) {
	assert.NoError(t, RequireOwnStudent(admin(), 99))
	assert.NoError(t, RequireOwnStudent(student(), 20))
	assert.ErrorIs(t, RequireOwnStudent(student(), 21), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, RequireOwnStudent(Identity{Role: models.RoleStudent}, 20), apperrors.ErrScopeUnresolved)
	assert.ErrorIs(t, RequireOwnStudent(lecturer(), 20), apperrors.ErrPermissionDenied)
}

func TestRequireOwnLecturer(t *testing.T) {
	assert.NoError(t, RequireOwnLecturer(admin(), 99))
	assert.NoError(t, RequireOwnLecturer(lecturer(), 10))
	assert.ErrorIs(t, RequireOwnLecturer(lecturer(), 11), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, RequireOwnLecturer(Identity{Role: models.RoleLecturer}, 10), apperrors.ErrScopeUnresolved)
	assert.ErrorIs(t, RequireOwnLecturer(student(), 10), apperrors.ErrPermissionDenied)
}
