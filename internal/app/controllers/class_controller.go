package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
)

// ClassController handles class operations
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass handles class creation
// @Summary Create a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=models.Class} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Class name already exists in the program"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid class data", err)
		return
	}

	class := &models.Class{
		ProgramID:  req.ProgramID,
		Name:       req.Name,
		CohortYear: req.CohortYear,
	}
	id, err := c.classService.CreateClass(ctx, class)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class.ID = id
	respondCreated(ctx, class)
}

// GetClassByID retrieves a class
// @Summary Get class details
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id} [get]
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	class, err := c.classService.GetClassByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, class)
}

// GetClasses lists classes
// @Summary List classes
// @Description Lists classes, optionally restricted to one program via ?programId=
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Classes"
// @Router /classes [get]
func (c *ClassController) GetClasses(ctx *gin.Context) {
	classes, err := c.classService.GetClasses(ctx, queryID(ctx, "programId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classes)
}

// GetClassStudents lists the students assigned to a class
// @Summary List class members
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id}/students [get]
func (c *ClassController) GetClassStudents(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	students, err := c.classService.GetClassStudents(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, students)
}

// UpdateClass updates a class
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Updated class information"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid class data", err)
		return
	}

	class := &models.Class{
		ID:         id,
		ProgramID:  req.ProgramID,
		Name:       req.Name,
		CohortYear: req.CohortYear,
	}
	if err := c.classService.UpdateClass(ctx, class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, class)
}

// DeleteClass deletes a class
// @Summary Delete a class
// @Description Fails with 409 while schedules still reference the class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Class deleted"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Schedules still reference this class"
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Class deleted"})
}
