package dto

import (
	"github.com/campuskit/siakad/internal/app/academics"
	"github.com/campuskit/siakad/internal/app/models"
)

// AdminDashboard holds the entity counters shown on the admin landing page
type AdminDashboard struct {
	Faculties     int64 `json:"faculties"`
	Programs      int64 `json:"programs"`
	Classes       int64 `json:"classes"`
	Courses       int64 `json:"courses"`
	Lecturers     int64 `json:"lecturers"`
	Students      int64 `json:"students"`
	Announcements int64 `json:"announcements"`
}

// LecturerDashboard holds the lecturer's view: today's schedule plus counters
// over what they own
type LecturerDashboard struct {
	SchedulesToday      []*models.Schedule `json:"schedulesToday"`
	ScheduleCount       int64              `json:"scheduleCount"`
	StudentCount        int64              `json:"studentCount"`
	PendingReviews      int64              `json:"pendingReviews"`
	UnreadAnnouncements int64              `json:"unreadAnnouncements"`
}

// StudentDashboard holds the student's view: attendance aggregate, recent
// grades and unread announcements
type StudentDashboard struct {
	Attendance          academics.AttendanceSummary `json:"attendance"`
	RecentGrades        []*models.Grade             `json:"recentGrades"`
	UnreadAnnouncements int64                       `json:"unreadAnnouncements"`
}
