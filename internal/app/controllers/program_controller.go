package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
)

// ProgramController handles study program operations
type ProgramController struct {
	programService services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

// CreateProgram handles study program creation
// @Summary Create a study program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgramRequest true "Program information"
// @Success 201 {object} dto.APIResponse{data=models.Program} "Program created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Router /programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid program data", err)
		return
	}

	program := &models.Program{
		FacultyID: req.FacultyID,
		Name:      req.Name,
		Code:      req.Code,
		Degree:    req.Degree,
	}
	id, err := c.programService.CreateProgram(ctx, program)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	program.ID = id
	respondCreated(ctx, program)
}

// GetProgramByID retrieves a study program with its faculty
// @Summary Get program details
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.Program} "Program"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgramByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	program, err := c.programService.GetProgramByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, program)
}

// GetPrograms lists study programs
// @Summary List programs
// @Description Lists programs, optionally restricted to one faculty via ?facultyId=
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param facultyId query int false "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Program} "Programs"
// @Router /programs [get]
func (c *ProgramController) GetPrograms(ctx *gin.Context) {
	programs, err := c.programService.GetPrograms(ctx, queryID(ctx, "facultyId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, programs)
}

// UpdateProgram updates a study program
// @Summary Update a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Updated program information"
// @Success 200 {object} dto.APIResponse{data=models.Program} "Program updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid program data", err)
		return
	}

	program := &models.Program{
		ID:        id,
		FacultyID: req.FacultyID,
		Name:      req.Name,
		Code:      req.Code,
		Degree:    req.Degree,
	}
	if err := c.programService.UpdateProgram(ctx, program); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, program)
}

// DeleteProgram deletes a study program
// @Summary Delete a program
// @Description Fails with 409 while classes, courses, lecturers or students still reference the program
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Program deleted"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Records still reference this program"
// @Router /programs/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.programService.DeleteProgram(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Program deleted"})
}
