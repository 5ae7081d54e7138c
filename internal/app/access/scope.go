// Package access implements the role-scoped query gate. Every read or write
// against a role-sensitive table goes through here once, instead of ad hoc
// role checks scattered over controllers. The gate derives a filter from the
// caller's identity; it performs no I/O and has no side effects.
package access

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// Identity describes the authenticated caller for the duration of one
// request. LinkedID is the lecturer or student record backing the account;
// it is 0 when the account has no such record (an orphaned account).
type Identity struct {
	UserID   int64
	Role     models.RoleType
	LinkedID int64
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

// Entity names the role-sensitive tables the gate knows how to scope.
type Entity string

const (
	EntitySchedule   Entity = "schedules"
	EntityAttendance Entity = "attendance"
	EntityGrade      Entity = "grades"
	EntityAssignment Entity = "assignments"
	EntitySubmission Entity = "submissions"
)

// ScopeFilter derives the filter restricting entity rows to what the
// identity may see. A nil Sqlizer means unrestricted (admin). Lecturer and
// student identities without a resolvable linked record are denied outright
// with ErrScopeUnresolved so a misconfigured account is distinguishable from
// an account that simply has no data yet.
func ScopeFilter(id Identity, entity Entity) (squirrel.Sqlizer, error) {
	switch id.Role {
	case models.RoleAdmin:
		return nil, nil
	case models.RoleLecturer:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		return lecturerFilter(id.LinkedID, entity)
	case models.RoleStudent:
		if id.LinkedID <= 0 {
			return nil, apperrors.ErrScopeUnresolved
		}
		return studentFilter(id.LinkedID, entity)
	default:
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("unknown role %q", id.Role))
	}
}

// lecturerFilter scopes rows to what the lecturer owns: their own schedules
// and assignments, attendance and submissions for those, and grades for
// courses they teach.
func lecturerFilter(lecturerID int64, entity Entity) (squirrel.Sqlizer, error) {
	switch entity {
	case EntitySchedule:
		return squirrel.Eq{"schedules.lecturer_id": lecturerID}, nil
	case EntityAssignment:
		return squirrel.Eq{"assignments.lecturer_id": lecturerID}, nil
	case EntityAttendance:
		return squirrel.Expr(
			"attendance.schedule_id IN (SELECT id FROM schedules WHERE lecturer_id = ?)",
			lecturerID), nil
	case EntitySubmission:
		return squirrel.Expr(
			"submissions.assignment_id IN (SELECT id FROM assignments WHERE lecturer_id = ?)",
			lecturerID), nil
	case EntityGrade:
		return squirrel.Expr(
			"grades.course_id IN (SELECT DISTINCT course_id FROM schedules WHERE lecturer_id = ?)",
			lecturerID), nil
	default:
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("no lecturer scope for entity %q", entity))
	}
}

// studentFilter scopes rows to the student's own records, plus the schedules
// of their class.
func studentFilter(studentID int64, entity Entity) (squirrel.Sqlizer, error) {
	switch entity {
	case EntityAttendance:
		return squirrel.Eq{"attendance.student_id": studentID}, nil
	case EntityGrade:
		return squirrel.Eq{"grades.student_id": studentID}, nil
	case EntitySubmission:
		return squirrel.Eq{"submissions.student_id": studentID}, nil
	case EntitySchedule:
		return squirrel.Expr(
			"schedules.class_id = (SELECT class_id FROM students WHERE id = ?)",
			studentID), nil
	default:
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("no student scope for entity %q", entity))
	}
}

// RequireOwnStudent guards paths that must act on the caller's own student
// record. Admins pass; students pass only for their own record.
func RequireOwnStudent(id Identity, studentID int64) error {
	switch id.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleStudent:
		if id.LinkedID <= 0 {
			return apperrors.ErrScopeUnresolved
		}
		if id.LinkedID != studentID {
			return apperrors.ErrPermissionDenied
		}
		return nil
	default:
		return apperrors.ErrPermissionDenied
	}
}

// RequireOwnLecturer guards write paths that must act as a specific lecturer.
// Admins pass; lecturers pass only for their own record.
func RequireOwnLecturer(id Identity, lecturerID int64) error {
	switch id.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleLecturer:
		if id.LinkedID <= 0 {
			return apperrors.ErrScopeUnresolved
		}
		if id.LinkedID != lecturerID {
			return apperrors.ErrPermissionDenied
		}
		return nil
	default:
		return apperrors.ErrPermissionDenied
	}
}
