package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
)

// ScheduleController handles weekly schedule operations
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// CreateSchedule creates a schedule slot
// @Summary Create a schedule slot
// @Description Rejects slots whose room overlaps an existing slot on the same weekday
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequest true "Schedule information"
// @Success 201 {object} dto.APIResponse{data=models.Schedule} "Schedule created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Class, course or lecturer not found"
// @Failure 409 {object} dto.ErrorResponse "Room already booked for an overlapping slot"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid schedule data", err)
		return
	}

	schedule := &models.Schedule{
		ClassID:    req.ClassID,
		CourseID:   req.CourseID,
		LecturerID: req.LecturerID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Room:       req.Room,
	}
	id, err := c.scheduleService.CreateSchedule(ctx, schedule)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	schedule.ID = id
	respondCreated(ctx, schedule)
}

// GetScheduleByID retrieves a schedule slot
// @Summary Get schedule details
// @Description Lecturers see only their own slots; students only their class's slots
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Schedule"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found or outside the caller's scope"
// @Router /schedules/{id} [get]
func (c *ScheduleController) GetScheduleByID(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	schedule, err := c.scheduleService.GetScheduleByID(ctx, identity, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, schedule)
}

// GetSchedules lists schedule slots within the caller's scope
// @Summary List schedules
// @Description Admins see everything; lecturers their own slots; students their class's slots
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param classId query int false "Class ID"
// @Param lecturerId query int false "Lecturer ID"
// @Param weekday query int false "Weekday (0=Sunday)"
// @Success 200 {object} dto.APIResponse{data=[]models.Schedule} "Schedules"
// @Router /schedules [get]
func (c *ScheduleController) GetSchedules(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	filter := repositories.ScheduleFilter{
		ClassID:    queryID(ctx, "classId"),
		LecturerID: queryID(ctx, "lecturerId"),
		Weekday:    -1,
	}
	if weekday, err := strconv.Atoi(ctx.DefaultQuery("weekday", "-1")); err == nil && weekday >= 0 && weekday <= 6 {
		filter.Weekday = weekday
	}

	schedules, err := c.scheduleService.GetSchedules(ctx, identity, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, schedules)
}

// UpdateSchedule updates a schedule slot
// @Summary Update a schedule slot
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Updated schedule information"
// @Success 200 {object} dto.APIResponse{data=models.Schedule} "Schedule updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Room already booked for an overlapping slot"
// @Router /schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid schedule data", err)
		return
	}

	schedule := &models.Schedule{
		ID:         id,
		ClassID:    req.ClassID,
		CourseID:   req.CourseID,
		LecturerID: req.LecturerID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Room:       req.Room,
	}
	if err := c.scheduleService.UpdateSchedule(ctx, schedule); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, schedule)
}

// DeleteSchedule deletes a schedule slot
// @Summary Delete a schedule slot
// @Description Fails with 409 while attendance records still reference the slot
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Schedule deleted"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 409 {object} dto.ErrorResponse "Attendance records still reference this slot"
// @Router /schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSchedule(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, dto.SuccessResponse{Message: "Schedule deleted"})
}
