package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/logger"
)

// HandleAPIError translates a service error into the standard error
// response. Controllers call it for every error a service returns, so the
// mapping from sentinel to status code lives in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := classifyError(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled service error")
		message = "An unexpected error occurred"
	}

	errorDetail := dto.NewErrorDetail(code, message)
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Field != "" {
			errorDetail = errorDetail.WithField(customErr.Field)
		}
		if customErr.Details != nil {
			errorDetail = errorDetail.WithDetails(customErr.Details)
		}
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

func classifyError(err error) (int, dto.ErrorCode, string) {
	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password"
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account is disabled"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired"
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token has been revoked"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"

	// Authorization
	case errors.Is(err, apperrors.ErrScopeUnresolved):
		return http.StatusForbidden, dto.ErrorCodeScopeUnresolved, "Account has no linked lecturer or student record"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, err.Error()

	// Conflicts
	case errors.Is(err, apperrors.ErrReferentialIntegrity):
		return http.StatusConflict, dto.ErrorCodeReferentialIntegrity, "Operation would break references held by other records"
	case errors.Is(err, apperrors.ErrScheduleRoomTaken):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, err.Error()
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, err.Error()
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrNIMAlreadyExists),
		errors.Is(err, apperrors.ErrNIDNAlreadyExists),
		errors.Is(err, apperrors.ErrFacultyAlreadyExists),
		errors.Is(err, apperrors.ErrProgramAlreadyExists),
		errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, err.Error()

	// Not found
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrFacultyNotFound),
		errors.Is(err, apperrors.ErrProgramNotFound),
		errors.Is(err, apperrors.ErrClassNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrLecturerNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrScheduleNotFound),
		errors.Is(err, apperrors.ErrAttendanceNotFound),
		errors.Is(err, apperrors.ErrGradeNotFound),
		errors.Is(err, apperrors.ErrAssignmentNotFound),
		errors.Is(err, apperrors.ErrSubmissionNotFound),
		errors.Is(err, apperrors.ErrAnnouncementNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error()

	// Validation
	case errors.Is(err, apperrors.ErrStudentNotInClass):
		return http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed, err.Error()
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error()

	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""
	}
}
