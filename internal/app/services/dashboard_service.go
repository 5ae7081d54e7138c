package services

import (
	"context"
	"time"

	"github.com/campuskit/siakad/internal/app/academics"
	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// DashboardService builds the role-specific landing page payloads
type DashboardService interface {
	AdminDashboard(ctx context.Context, id access.Identity) (*dto.AdminDashboard, error)
	LecturerDashboard(ctx context.Context, id access.Identity) (*dto.LecturerDashboard, error)
	StudentDashboard(ctx context.Context, id access.Identity) (*dto.StudentDashboard, error)
}

type dashboardServiceImpl struct {
	statsRepo        *repositories.StatsRepository
	scheduleRepo     *repositories.ScheduleRepository
	attendanceRepo   *repositories.AttendanceRepository
	gradeRepo        *repositories.GradeRepository
	announcementRepo *repositories.AnnouncementRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(
	statsRepo *repositories.StatsRepository,
	scheduleRepo *repositories.ScheduleRepository,
	attendanceRepo *repositories.AttendanceRepository,
	gradeRepo *repositories.GradeRepository,
	announcementRepo *repositories.AnnouncementRepository,
) DashboardService {
	return &dashboardServiceImpl{
		statsRepo:        statsRepo,
		scheduleRepo:     scheduleRepo,
		attendanceRepo:   attendanceRepo,
		gradeRepo:        gradeRepo,
		announcementRepo: announcementRepo,
	}
}

// AdminDashboard returns entity counters across the campus
func (s *dashboardServiceImpl) AdminDashboard(ctx context.Context, id access.Identity) (*dto.AdminDashboard, error) {
	if !id.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}

	dashboard := &dto.AdminDashboard{}
	counters := []struct {
		table string
		dest  *int64
	}{
		{"faculties", &dashboard.Faculties},
		{"programs", &dashboard.Programs},
		{"classes", &dashboard.Classes},
		{"courses", &dashboard.Courses},
		{"lecturers", &dashboard.Lecturers},
		{"students", &dashboard.Students},
		{"announcements", &dashboard.Announcements},
	}
	for _, counter := range counters {
		count, err := s.statsRepo.CountRows(ctx, counter.table)
		if err != nil {
			return nil, err
		}
		*counter.dest = count
	}

	return dashboard, nil
}

// LecturerDashboard returns today's teaching slots plus ownership counters
func (s *dashboardServiceImpl) LecturerDashboard(ctx context.Context, id access.Identity) (*dto.LecturerDashboard, error) {
	if id.Role != models.RoleLecturer {
		return nil, apperrors.ErrPermissionDenied
	}
	if id.LinkedID <= 0 {
		return nil, apperrors.ErrScopeUnresolved
	}

	today := int(time.Now().Weekday())
	schedulesToday, err := s.scheduleRepo.GetSchedules(ctx, repositories.ScheduleFilter{
		LecturerID: id.LinkedID,
		Weekday:    today,
	}, nil)
	if err != nil {
		return nil, err
	}

	courseCount, err := s.statsRepo.CountScheduledCourses(ctx, id.LinkedID)
	if err != nil {
		return nil, err
	}

	studentCount, err := s.statsRepo.CountTaughtStudents(ctx, id.LinkedID)
	if err != nil {
		return nil, err
	}

	pendingReviews, err := s.statsRepo.CountPendingReviews(ctx, id.LinkedID)
	if err != nil {
		return nil, err
	}

	unread, err := s.announcementRepo.CountUnread(ctx, id.UserID, id.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LecturerDashboard{
		SchedulesToday:      schedulesToday,
		ScheduleCount:       courseCount,
		StudentCount:        studentCount,
		PendingReviews:      pendingReviews,
		UnreadAnnouncements: unread,
	}, nil
}

// StudentDashboard returns the attendance aggregate, recent grades and the
// unread announcement counter
func (s *dashboardServiceImpl) StudentDashboard(ctx context.Context, id access.Identity) (*dto.StudentDashboard, error) {
	if id.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	if id.LinkedID <= 0 {
		return nil, apperrors.ErrScopeUnresolved
	}

	statuses, err := s.attendanceRepo.GetStudentStatuses(ctx, id.LinkedID, 0)
	if err != nil {
		return nil, err
	}
	flat := make([]models.Attendance, len(statuses))
	for i, status := range statuses {
		flat[i] = models.Attendance{Status: status}
	}
	summary := academics.SummarizeAttendance(flat)

	scope, err := access.ScopeFilter(id, access.EntityGrade)
	if err != nil {
		return nil, err
	}
	grades, err := s.gradeRepo.GetGrades(ctx, repositories.GradeFilter{StudentID: id.LinkedID}, scope)
	if err != nil {
		return nil, err
	}
	if len(grades) > 5 {
		grades = grades[:5]
	}

	unread, err := s.announcementRepo.CountUnread(ctx, id.UserID, id.Role)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboard{
		Attendance:          summary,
		RecentGrades:        grades,
		UnreadAnnouncements: unread,
	}, nil
}
