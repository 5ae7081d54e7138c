package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("conflict")

	// ErrReferentialIntegrity is returned when a write would break a foreign
	// key relationship. It is propagated from the persistence layer, never
	// swallowed.
	ErrReferentialIntegrity = errors.New("operation violates a referential constraint")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	// ErrScopeUnresolved is returned when an identity claims a role that
	// requires a linked lecturer/student record but none can be resolved.
	// Access fails closed; this is distinct from an empty result.
	ErrScopeUnresolved = errors.New("identity has no linked record for its role")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Faculty / Program errors
var (
	ErrFacultyNotFound      = errors.New("faculty not found")
	ErrFacultyAlreadyExists = errors.New("faculty with this name or code already exists")
	ErrProgramNotFound      = errors.New("study program not found")
	ErrProgramAlreadyExists = errors.New("study program with this code already exists")
)

// Class / Course errors
var (
	ErrClassNotFound       = errors.New("class not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this code already exists in the program")
)

// Lecturer / Student errors
var (
	ErrLecturerNotFound  = errors.New("lecturer not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrNIMAlreadyExists  = errors.New("enrollment number already exists")
	ErrNIDNAlreadyExists = errors.New("lecturer identification number already exists")
	ErrStudentNotInClass = errors.New("student is not assigned to a class")
)

// Schedule / Attendance / Grade errors
var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrScheduleRoomTaken  = errors.New("room is already booked for an overlapping time slot")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrGradeNotFound      = errors.New("grade not found")
)

// Assignment / Announcement errors
var (
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrDeadlinePassed       = errors.New("assignment deadline has passed")
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField attaches the offending field name
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
