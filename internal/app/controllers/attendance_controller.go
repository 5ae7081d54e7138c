package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
)

// AttendanceController handles attendance recording and aggregation
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// RecordMeeting records attendance for one meeting of a schedule
// @Summary Record meeting attendance
// @Description Upserts per-student statuses for one (schedule, date) meeting. Re-submitting a meeting replaces the statuses in place.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body dto.RecordAttendanceRequest true "Meeting date and per-student statuses"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Recorded attendance"
// @Failure 400 {object} dto.ErrorResponse "Invalid date, status or student outside the class"
// @Failure 403 {object} dto.ErrorResponse "Not the owning lecturer"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id}/attendance [post]
func (c *AttendanceController) RecordMeeting(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	scheduleID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid attendance data", err)
		return
	}

	records, err := c.attendanceService.RecordMeeting(ctx, identity, scheduleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, records)
}

// GetMeetingAttendance lists one meeting's records
// @Summary Get meeting attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param date query string true "Meeting date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance records"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid date"
// @Failure 403 {object} dto.ErrorResponse "Not the owning lecturer"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id}/attendance [get]
func (c *AttendanceController) GetMeetingAttendance(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	scheduleID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	date := ctx.Query("date")
	if date == "" {
		respondBadRequest(ctx, "Query parameter date is required", nil)
		return
	}

	records, err := c.attendanceService.GetMeetingAttendance(ctx, identity, scheduleID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, records)
}

// GetStudentAttendance lists a student's attendance records
// @Summary Get student attendance
// @Description Students see only their own records; lecturers only records of their schedules
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param courseId query int false "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance records"
// @Failure 403 {object} dto.ErrorResponse "Outside the caller's scope"
// @Router /students/{id}/attendance [get]
func (c *AttendanceController) GetStudentAttendance(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	records, err := c.attendanceService.GetStudentAttendance(ctx, identity, studentID, queryID(ctx, "courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, records)
}

// GetStudentSummary returns a student's attendance aggregate
// @Summary Get attendance summary
// @Description Counts per status plus the attendance percentage, optionally per course
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param courseId query int false "Course ID"
// @Success 200 {object} dto.APIResponse{data=academics.AttendanceSummary} "Summary"
// @Failure 403 {object} dto.ErrorResponse "Outside the caller's scope"
// @Router /students/{id}/attendance/summary [get]
func (c *AttendanceController) GetStudentSummary(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.attendanceService.GetStudentSummary(ctx, identity, studentID, queryID(ctx, "courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, summary)
}
