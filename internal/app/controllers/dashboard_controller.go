package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/services"
	"github.com/campuskit/siakad/internal/middleware"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// DashboardController serves the role-specific landing page payload
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the dashboard matching the caller's role
// @Summary Get dashboard
// @Description Admins get campus-wide counters, lecturers today's schedule and ownership counters, students their attendance aggregate and recent grades
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Dashboard payload"
// @Failure 403 {object} dto.ErrorResponse "Account has no linked record"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		return
	}

	var payload interface{}
	var err error
	switch identity.Role {
	case models.RoleAdmin:
		payload, err = c.dashboardService.AdminDashboard(ctx, identity)
	case models.RoleLecturer:
		payload, err = c.dashboardService.LecturerDashboard(ctx, identity)
	case models.RoleStudent:
		payload, err = c.dashboardService.StudentDashboard(ctx, identity)
	default:
		err = apperrors.ErrPermissionDenied
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, payload)
}
