package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
)

// GradeController handles grade recording and transcripts
type GradeController struct {
	gradeService services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService) *GradeController {
	return &GradeController{
		gradeService: gradeService,
	}
}

// UpsertGrade records component scores for one enrollment
// @Summary Record a grade
// @Description Inserts or replaces the grade for one (student, course, semester, year). The final score and letter grade are computed server-side; submitted values for them are ignored. Lecturers may only grade courses they teach.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertGradeRequest true "Component scores"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Recorded grade"
// @Failure 400 {object} dto.ErrorResponse "Score outside 0-100"
// @Failure 403 {object} dto.ErrorResponse "Lecturer does not teach the course"
// @Router /grades [put]
func (c *GradeController) UpsertGrade(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpsertGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid grade data", err)
		return
	}

	grade, err := c.gradeService.UpsertGrade(ctx, identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, grade)
}

// GetGrades lists grades within the caller's scope
// @Summary List grades
// @Description Admins see everything; lecturers grades of courses they teach; students only their own rows
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Student ID"
// @Param courseId query int false "Course ID"
// @Param semester query int false "Semester"
// @Param academicYear query string false "Academic year (e.g. 2024/2025)"
// @Success 200 {object} dto.APIResponse{data=[]models.Grade} "Grades"
// @Router /grades [get]
func (c *GradeController) GetGrades(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	var filter dto.GradeFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBadRequest(ctx, "Invalid grade filter", err)
		return
	}

	grades, err := c.gradeService.GetGrades(ctx, identity, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, grades)
}

// GetGradeByID returns a single grade row
// @Summary Get a grade
// @Description Fetches one grade row. Rows outside the caller's scope respond 404.
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [get]
func (c *GradeController) GetGradeByID(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	gradeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	grade, err := c.gradeService.GetGrade(ctx, identity, gradeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, grade)
}

// DeleteGrade removes a grade row
// @Summary Delete a grade
// @Description Admin-only removal of a grade row
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	gradeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.gradeService.DeleteGrade(ctx, identity, gradeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"message": "Grade deleted successfully"})
}

// GetMyGrades returns the caller's transcript rows
// @Summary Get own grades
// @Description Student-only view of the caller's grades, optionally narrowed to one semester or year
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param semester query int false "Semester"
// @Param academicYear query string false "Academic year"
// @Success 200 {object} dto.APIResponse{data=[]models.Grade} "Grades"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /me/grades [get]
func (c *GradeController) GetMyGrades(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	semester := 0
	if s, err := strconv.Atoi(ctx.DefaultQuery("semester", "0")); err == nil && s > 0 {
		semester = s
	}

	grades, err := c.gradeService.GetMyGrades(ctx, identity, semester, ctx.Query("academicYear"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, grades)
}
