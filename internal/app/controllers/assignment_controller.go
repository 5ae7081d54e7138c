package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
)

// AssignmentController handles assignments and submissions
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// CreateAssignment publishes an assignment
// @Summary Create an assignment
// @Description Lecturers may only publish for courses they teach
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssignmentRequest true "Assignment information"
// @Success 201 {object} dto.APIResponse{data=models.Assignment} "Assignment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Lecturer does not teach the course"
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid assignment data", err)
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx, identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, assignment)
}

// GetAssignmentByID retrieves an assignment
// @Summary Get assignment details
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=models.Assignment} "Assignment"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found or outside the caller's scope"
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetAssignmentByID(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	assignment, err := c.assignmentService.GetAssignmentByID(ctx, identity, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, assignment)
}

// GetAssignments lists assignments within the caller's scope
// @Summary List assignments
// @Description Lecturers see their own assignments; students those of courses scheduled for their class
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Assignment} "Assignments"
// @Router /assignments [get]
func (c *AssignmentController) GetAssignments(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	assignments, err := c.assignmentService.GetAssignments(ctx, identity, queryID(ctx, "courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, assignments)
}

// UpdateAssignment updates an assignment
// @Summary Update an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.UpdateAssignmentRequest true "Updated assignment information"
// @Success 200 {object} dto.APIResponse{data=models.Assignment} "Assignment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the owning lecturer"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id} [put]
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid assignment data", err)
		return
	}

	assignment, err := c.assignmentService.UpdateAssignment(ctx, identity, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, assignment)
}

// DeleteAssignment deletes an assignment
// @Summary Delete an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Assignment deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owning lecturer"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.assignmentService.DeleteAssignment(ctx, identity, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Assignment deleted"})
}

// SubmitAssignment uploads a submission file
// @Summary Submit an assignment
// @Description Stores the uploaded file and upserts the submission. Re-submitting before the deadline replaces the file and clears any score.
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param file formData file true "Submission file"
// @Success 200 {object} dto.APIResponse{data=models.Submission} "Submission stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student taking the course"
// @Failure 409 {object} dto.ErrorResponse "Deadline has passed"
// @Router /assignments/{id}/submissions [post]
func (c *AssignmentController) SubmitAssignment(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		respondBadRequest(ctx, "Submission file is required", err)
		return
	}

	submission, err := c.assignmentService.SubmitAssignment(ctx, identity, id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, submission)
}

// GetSubmissions lists submissions for an assignment
// @Summary List submissions
// @Description Restricted to the owning lecturer and admins
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Submission} "Submissions"
// @Failure 403 {object} dto.ErrorResponse "Not the owning lecturer"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id}/submissions [get]
func (c *AssignmentController) GetSubmissions(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	submissions, err := c.assignmentService.GetSubmissions(ctx, identity, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, submissions)
}

// GetMySubmission returns the caller's submission for an assignment
// @Summary Get own submission
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=models.Submission} "Submission"
// @Failure 404 {object} dto.ErrorResponse "No submission yet"
// @Router /assignments/{id}/submissions/mine [get]
func (c *AssignmentController) GetMySubmission(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.assignmentService.GetMySubmission(ctx, identity, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, submission)
}

// ScoreSubmission records a review for a submission
// @Summary Score a submission
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body dto.ScoreSubmissionRequest true "Score and optional notes"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Submission scored"
// @Failure 400 {object} dto.ErrorResponse "Score outside 0-100"
// @Failure 403 {object} dto.ErrorResponse "Not the owning lecturer"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{id}/score [put]
func (c *AssignmentController) ScoreSubmission(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ScoreSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid score data", err)
		return
	}

	if err := c.assignmentService.ScoreSubmission(ctx, identity, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Submission scored"})
}
