package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/auth"
)

const identityKey = "identity"

// AuthMiddleware validates bearer tokens and resolves the caller's identity
type AuthMiddleware struct {
	jwtService   *auth.JWTService
	lecturerRepo *repositories.LecturerRepository
	studentRepo  *repositories.StudentRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(
	jwtService *auth.JWTService,
	lecturerRepo *repositories.LecturerRepository,
	studentRepo *repositories.StudentRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		lecturerRepo: lecturerRepo,
		studentRepo:  studentRepo,
	}
}

// JWTAuth validates the Authorization header and stores the resolved
// identity in the request context. The linked lecturer or student record is
// looked up per request rather than trusted from the token, so losing the
// record takes effect on the next call.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Missing or malformed Authorization header")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		identity := access.Identity{
			UserID: claims.UserID,
			Role:   models.RoleType(claims.Role),
		}
		if !identity.Role.Valid() {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Token carries an unknown role")
			return
		}

		linkedID, err := m.resolveLinkedID(c, identity)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		identity.LinkedID = linkedID

		c.Set(identityKey, identity)
		c.Next()
	}
}

// resolveLinkedID finds the lecturer or student record backing the account.
// A missing record resolves to 0; the access gate decides what that means
// for each operation.
func (m *AuthMiddleware) resolveLinkedID(c *gin.Context, identity access.Identity) (int64, error) {
	switch identity.Role {
	case models.RoleLecturer:
		lecturer, err := m.lecturerRepo.GetLecturerByUserID(c.Request.Context(), identity.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrLecturerNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return lecturer.ID, nil
	case models.RoleStudent:
		student, err := m.studentRepo.GetStudentByUserID(c.Request.Context(), identity.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				return 0, nil
			}
			return 0, err
		}
		return student.ID, nil
	default:
		return 0, nil
	}
}

// RequireRoles restricts a route group to the given roles. JWTAuth must run
// first.
func (m *AuthMiddleware) RequireRoles(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "No identity in request context")
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// IdentityFromContext returns the identity stored by JWTAuth.
func IdentityFromContext(c *gin.Context) (access.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return access.Identity{}, false
	}
	identity, ok := value.(access.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
