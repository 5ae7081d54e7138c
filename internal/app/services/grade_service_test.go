package services

import (
	"context"
	"errors"
	"fmt"
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

type fakeGradeStore struct {
	grades []*models.Grade
	nextID int64
}

func (f *fakeGradeStore) UpsertGrade(_ context.Context, grade *models.Grade) error {
	for _, existing := range f.grades {
		if existing.StudentID == grade.StudentID &&
			existing.CourseID == grade.CourseID &&
			existing.Semester == grade.Semester &&
			existing.AcademicYear == grade.AcademicYear {
			grade.ID = existing.ID
			*existing = *grade
			return nil
		}
	}
	f.nextID++
	grade.ID = f.nextID
	stored := *grade
	f.grades = append(f.grades, &stored)
	return nil
}

func (f *fakeGradeStore) GetGrades(_ context.Context, filter repositories.GradeFilter, scope squirrel.Sqlizer) ([]*models.Grade, error) {
	scopedStudent := int64(0)
	if eq, ok := scope.(squirrel.Eq); ok {
		if v, ok := eq["grades.student_id"]; ok {
			scopedStudent = v.(int64)
		}
	}

	var out []*models.Grade
	for _, grade := range f.grades {
		if scopedStudent > 0 && grade.StudentID != scopedStudent {
			continue
		}
		if filter.StudentID > 0 && grade.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID > 0 && grade.CourseID != filter.CourseID {
			continue
		}
		if filter.Semester > 0 && grade.Semester != filter.Semester {
			continue
		}
		if filter.AcademicYear != "" && grade.AcademicYear != filter.AcademicYear {
			continue
		}
		out = append(out, grade)
	}
	return out, nil
}

func (f *fakeGradeStore) GetGradeByID(_ context.Context, id int64) (*models.Grade, error) {
	for _, grade := range f.grades {
		if grade.ID == id {
			return grade, nil
		}
	}
	return nil, apperrors.ErrGradeNotFound
}

func (f *fakeGradeStore) DeleteGrade(_ context.Context, id int64) error {
	for i, grade := range f.grades {
		if grade.ID == id {
			f.grades = append(f.grades[:i], f.grades[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrGradeNotFound
}

type fakeTeachingChecker struct {
	taught map[string]bool
}

func (f *fakeTeachingChecker) LecturerTeachesCourse(_ context.Context, lecturerID, courseID int64) (bool, error) {
	return f.taught[fmt.Sprintf("%d/%d", lecturerID, courseID)], nil
}

func scorePtr(v float64) *float64 { return &v }

func TestUpsertGradeComputesFinalScore(t *testing.T) {
	store := &fakeGradeStore{}
	teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true, "7/2": true}}
	svc := NewGradeService(store, teaching)
	lecturer := access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7}

	grade, err := svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID:    3,
		CourseID:     1,
		Semester:     1,
		AcademicYear: "2024/2025",
		Assignment:   scorePtr(80),
		Midterm:      scorePtr(75),
		FinalExam:    scorePtr(90),
	})
	require.NoError(t, err)
	assert.Equal(t, 82.5, grade.FinalScore)
	assert.Equal(t, "B", grade.LetterGrade)

	grade, err = svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID:    3,
		CourseID:     2,
		Semester:     1,
		AcademicYear: "2024/2025",
		Assignment:   scorePtr(50),
		Midterm:      scorePtr(40),
		FinalExam:    scorePtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, 39.0, grade.FinalScore)
	assert.Equal(t, "E", grade.LetterGrade)
}

func TestUpsertGradeMissingComponentsCountAsZero(t *testing.T) {
	store := &fakeGradeStore{}
	teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true}}
	svc := NewGradeService(store, teaching)
	lecturer := access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7}

	grade, err := svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID:    3,
		CourseID:     1,
		Semester:     1,
		AcademicYear: "2024/2025",
		FinalExam:    scorePtr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, grade.Assignment)
	assert.Equal(t, 0.0, grade.Midterm)
	assert.Equal(t, 40.0, grade.FinalScore)
	assert.Equal(t, "D", grade.LetterGrade)
}

func TestUpsertGradeReplacesExistingRow(t *testing.T) {
	store := &fakeGradeStore{}
	teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true}}
	svc := NewGradeService(store, teaching)
	lecturer := access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7}

	req := &dto.UpsertGradeRequest{
		StudentID:    3,
		CourseID:     1,
		Semester:     2,
		AcademicYear: "2024/2025",
		Assignment:   scorePtr(60),
		Midterm:      scorePtr(60),
		FinalExam:    scorePtr(60),
	}
	first, err := svc.UpsertGrade(context.Background(), lecturer, req)
	require.NoError(t, err)

	req.Assignment = scorePtr(90)
	req.Midterm = scorePtr(90)
	req.FinalExam = scorePtr(90)
	second, err := svc.UpsertGrade(context.Background(), lecturer, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.grades, 1)
	assert.Equal(t, 90.0, store.grades[0].FinalScore)
	assert.Equal(t, "A", store.grades[0].LetterGrade)
}

func TestUpsertGradeAuthorization(t *testing.T) {
	tests := []struct {
		name     string
		identity access.Identity
		courseID int64
		wantErr  error
	}{
		{
			name:     "admin writes any course",
			identity: access.Identity{UserID: 1, Role: models.RoleAdmin},
			courseID: 99,
		},
		{
			name:     "lecturer writes taught course",
			identity: access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7},
			courseID: 1,
		},
		{
			name:     "lecturer denied for untaught course",
			identity: access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7},
			courseID: 99,
			wantErr:  apperrors.ErrPermissionDenied,
		},
		{
			name:     "lecturer without linked record fails closed",
			identity: access.Identity{UserID: 71, Role: models.RoleLecturer},
			courseID: 1,
			wantErr:  apperrors.ErrScopeUnresolved,
		},
		{
			name:     "student denied",
			identity: access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3},
			courseID: 1,
			wantErr:  apperrors.ErrPermissionDenied,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeGradeStore{}
			teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true}}
			svc := NewGradeService(store, teaching)

			_, err := svc.UpsertGrade(context.Background(), tt.identity, &dto.UpsertGradeRequest{
				StudentID:    3,
				CourseID:     tt.courseID,
				Semester:     1,
				AcademicYear: "2024/2025",
				Assignment:   scorePtr(70),
				Midterm:      scorePtr(70),
				FinalExam:    scorePtr(70),
			})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Empty(t, store.grades)
				return
			}
			require.NoError(t, err)
			assert.Len(t, store.grades, 1)
		})
	}
}

func TestGetMyGradesSeesOnlyOwnRows(t *testing.T) {
	store := &fakeGradeStore{}
	teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true, "7/2": true}}
	svc := NewGradeService(store, teaching)
	lecturer := access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7}

	// Student 3 takes two courses; student 4 one.
	_, err := svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID: 3, CourseID: 1, Semester: 1, AcademicYear: "2024/2025",
		Assignment: scorePtr(80), Midterm: scorePtr(75), FinalExam: scorePtr(90),
	})
	require.NoError(t, err)
	_, err = svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID: 3, CourseID: 2, Semester: 1, AcademicYear: "2024/2025",
		Assignment: scorePtr(90), Midterm: scorePtr(90), FinalExam: scorePtr(90),
	})
	require.NoError(t, err)
	_, err = svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID: 4, CourseID: 1, Semester: 1, AcademicYear: "2024/2025",
		Assignment: scorePtr(80), Midterm: scorePtr(80), FinalExam: scorePtr(80),
	})
	require.NoError(t, err)

	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	grades, err := svc.GetMyGrades(context.Background(), student, 0, "")
	require.NoError(t, err)
	require.Len(t, grades, 2)
	letters := map[int64]string{}
	for _, grade := range grades {
		assert.Equal(t, int64(3), grade.StudentID)
		letters[grade.CourseID] = grade.LetterGrade
	}
	assert.Equal(t, map[int64]string{1: "B", 2: "A"}, letters)

	_, err = svc.GetMyGrades(context.Background(), lecturer, 0, "")
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	orphan := access.Identity{UserID: 31, Role: models.RoleStudent}
	_, err = svc.GetMyGrades(context.Background(), orphan, 0, "")
	assert.True(t, errors.Is(err, apperrors.ErrScopeUnresolved))
}

func TestGetGradeMasksOutOfScopeRows(t *testing.T) {
	store := &fakeGradeStore{}
	teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true}}
	svc := NewGradeService(store, teaching)
	lecturer := access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7}

	grade, err := svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID:    3,
		CourseID:     1,
		Semester:     1,
		AcademicYear: "2024/2025",
		Assignment:   scorePtr(80),
		Midterm:      scorePtr(80),
		FinalExam:    scorePtr(80),
	})
	require.NoError(t, err)

	owner := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	got, err := svc.GetGrade(context.Background(), owner, grade.ID)
	require.NoError(t, err)
	assert.Equal(t, grade.ID, got.ID)

	// Another student gets not-found, not forbidden.
	other := access.Identity{UserID: 40, Role: models.RoleStudent, LinkedID: 4}
	_, err = svc.GetGrade(context.Background(), other, grade.ID)
	assert.True(t, errors.Is(err, apperrors.ErrGradeNotFound))

	outsider := access.Identity{UserID: 80, Role: models.RoleLecturer, LinkedID: 8}
	_, err = svc.GetGrade(context.Background(), outsider, grade.ID)
	assert.True(t, errors.Is(err, apperrors.ErrGradeNotFound))

	got, err = svc.GetGrade(context.Background(), lecturer, grade.ID)
	require.NoError(t, err)
	assert.Equal(t, grade.ID, got.ID)
}

func TestDeleteGradeRequiresAdmin(t *testing.T) {
	store := &fakeGradeStore{}
	teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true}}
	svc := NewGradeService(store, teaching)
	lecturer := access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7}

	grade, err := svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
		StudentID:    3,
		CourseID:     1,
		Semester:     1,
		AcademicYear: "2024/2025",
		Assignment:   scorePtr(80),
		Midterm:      scorePtr(80),
		FinalExam:    scorePtr(80),
	})
	require.NoError(t, err)

	err = svc.DeleteGrade(context.Background(), lecturer, grade.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	assert.Len(t, store.grades, 1)

	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}
	require.NoError(t, svc.DeleteGrade(context.Background(), admin, grade.ID))
	assert.Empty(t, store.grades)

	err = svc.DeleteGrade(context.Background(), admin, grade.ID)
	assert.True(t, errors.Is(err, apperrors.ErrGradeNotFound))
}

func TestGetGradesScopeIntersectsFilter(t *testing.T) {
	store := &fakeGradeStore{}
	teaching := &fakeTeachingChecker{taught: map[string]bool{"7/1": true}}
	svc := NewGradeService(store, teaching)
	lecturer := access.Identity{UserID: 70, Role: models.RoleLecturer, LinkedID: 7}

	for _, studentID := range []int64{3, 4} {
		_, err := svc.UpsertGrade(context.Background(), lecturer, &dto.UpsertGradeRequest{
			StudentID:    studentID,
			CourseID:     1,
			Semester:     1,
			AcademicYear: "2024/2025",
			Assignment:   scorePtr(80),
			Midterm:      scorePtr(80),
			FinalExam:    scorePtr(80),
		})
		require.NoError(t, err)
	}

	// A student requesting another student's rows gets an empty list.
	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	grades, err := svc.GetGrades(context.Background(), student, dto.GradeFilter{StudentID: 4})
	require.NoError(t, err)
	assert.Empty(t, grades)

	grades, err = svc.GetGrades(context.Background(), student, dto.GradeFilter{})
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, int64(3), grades[0].StudentID)
}
