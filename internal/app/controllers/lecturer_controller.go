package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
	"github.com/campuskit/siakad/internal/pkg/helpers"
)

// LecturerController handles lecturer administration
type LecturerController struct {
	lecturerService services.LecturerService
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService services.LecturerService) *LecturerController {
	return &LecturerController{
		lecturerService: lecturerService,
	}
}

// CreateLecturer creates a lecturer with its user account
// @Summary Create a lecturer
// @Description Creates the user account and the lecturer record in one transaction
// @Tags lecturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLecturerRequest true "Lecturer information"
// @Success 201 {object} dto.APIResponse{data=models.Lecturer} "Lecturer created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Email or NIDN already exists"
// @Router /lecturers [post]
func (c *LecturerController) CreateLecturer(ctx *gin.Context) {
	var req dto.CreateLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid lecturer data", err)
		return
	}

	lecturer, err := c.lecturerService.CreateLecturer(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, lecturer)
}

// GetLecturerByID retrieves a lecturer
// @Summary Get lecturer details
// @Tags lecturers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer} "Lecturer"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Router /lecturers/{id} [get]
func (c *LecturerController) GetLecturerByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	lecturer, err := c.lecturerService.GetLecturerByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, lecturer)
}

// GetLecturers lists lecturers with pagination
// @Summary List lecturers
// @Tags lecturers
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Program ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Lecturer} "Lecturers"
// @Router /lecturers [get]
func (c *LecturerController) GetLecturers(ctx *gin.Context) {
	page, size := helpers.GetPageParams(ctx)
	lecturers, total, err := c.lecturerService.GetLecturers(ctx, queryID(ctx, "programId"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, lecturers, helpers.NewPaginationInfo(total, page, size))
}

// UpdateLecturer updates a lecturer
// @Summary Update a lecturer
// @Tags lecturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecturer ID"
// @Param request body dto.UpdateLecturerRequest true "Updated lecturer information"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer} "Lecturer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 409 {object} dto.ErrorResponse "NIDN already exists"
// @Router /lecturers/{id} [put]
func (c *LecturerController) UpdateLecturer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid lecturer data", err)
		return
	}

	lecturer, err := c.lecturerService.UpdateLecturer(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, lecturer)
}

// DeleteLecturer deletes a lecturer and its user account
// @Summary Delete a lecturer
// @Description Fails with 409 while schedules still reference the lecturer
// @Tags lecturers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Lecturer deleted"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 409 {object} dto.ErrorResponse "Schedules still reference this lecturer"
// @Router /lecturers/{id} [delete]
func (c *LecturerController) DeleteLecturer(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.lecturerService.DeleteLecturer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Lecturer deleted"})
}
