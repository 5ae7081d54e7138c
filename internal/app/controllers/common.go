package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/middleware"
)

// respondOK writes the standard success envelope.
func respondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

// respondCreated writes the standard success envelope with a 201 status.
func respondCreated(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

// respondPage writes a list response with pagination metadata.
func respondPage(ctx *gin.Context, data interface{}, pagination dto.PaginationInfo) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:       data,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	})
}

// respondBadRequest writes a validation error with details from binding.
func respondBadRequest(ctx *gin.Context, message string, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if err != nil {
		errorDetail = errorDetail.WithDetails(err.Error())
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// pathID parses the named int64 path parameter. On failure it writes the
// error response and reports false.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(ctx, "Invalid "+name+" path parameter", nil)
		return 0, false
	}
	return id, true
}

// queryID parses an optional int64 query parameter, returning 0 when absent.
func queryID(ctx *gin.Context, name string) int64 {
	value := ctx.Query(name)
	if value == "" {
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// callerIdentity returns the identity resolved by the auth middleware. The
// middleware always runs before protected handlers; a missing identity means
// a route wiring mistake, answered with 401 rather than a panic.
func callerIdentity(ctx *gin.Context) (access.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return access.Identity{}, false
	}
	return identity, true
}
