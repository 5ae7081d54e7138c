package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/siakad/internal/app/controllers"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/middleware"
)

// Controllers bundles every controller the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Faculty      *controllers.FacultyController
	Program      *controllers.ProgramController
	Class        *controllers.ClassController
	Course       *controllers.CourseController
	Lecturer     *controllers.LecturerController
	Student      *controllers.StudentController
	Schedule     *controllers.ScheduleController
	Attendance   *controllers.AttendanceController
	Grade        *controllers.GradeController
	Assignment   *controllers.AssignmentController
	Announcement *controllers.AnnouncementController
	Dashboard    *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Session routes
	authenticated.POST("/auth/logout", c.Auth.Logout)
	authenticated.GET("/auth/me", c.Auth.GetProfile)
	authenticated.PUT("/auth/password", c.Auth.ChangePassword)

	authenticated.GET("/dashboard", c.Dashboard.GetDashboard)

	adminOnly := authMiddleware.RequireRoles(models.RoleAdmin)
	adminOrLecturer := authMiddleware.RequireRoles(models.RoleAdmin, models.RoleLecturer)

	authenticated.PUT("/users/:id/status", adminOnly, c.Auth.SetUserStatus)

	// Faculty routes: reads for everyone, writes for admins
	faculties := authenticated.Group("/faculties")
	{
		faculties.GET("", c.Faculty.GetAllFaculties)
		faculties.GET("/:id", c.Faculty.GetFacultyByID)
		faculties.POST("", adminOnly, c.Faculty.CreateFaculty)
		faculties.PUT("/:id", adminOnly, c.Faculty.UpdateFaculty)
		faculties.DELETE("/:id", adminOnly, c.Faculty.DeleteFaculty)
	}

	programs := authenticated.Group("/programs")
	{
		programs.GET("", c.Program.GetPrograms)
		programs.GET("/:id", c.Program.GetProgramByID)
		programs.POST("", adminOnly, c.Program.CreateProgram)
		programs.PUT("/:id", adminOnly, c.Program.UpdateProgram)
		programs.DELETE("/:id", adminOnly, c.Program.DeleteProgram)
	}

	classes := authenticated.Group("/classes")
	{
		classes.GET("", c.Class.GetClasses)
		classes.GET("/:id", c.Class.GetClassByID)
		classes.GET("/:id/students", adminOrLecturer, c.Class.GetClassStudents)
		classes.POST("", adminOnly, c.Class.CreateClass)
		classes.PUT("/:id", adminOnly, c.Class.UpdateClass)
		classes.DELETE("/:id", adminOnly, c.Class.DeleteClass)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", c.Course.GetCourses)
		courses.GET("/:id", c.Course.GetCourseByID)
		courses.POST("", adminOnly, c.Course.CreateCourse)
		courses.PUT("/:id", adminOnly, c.Course.UpdateCourse)
		courses.DELETE("/:id", adminOnly, c.Course.DeleteCourse)
	}

	lecturers := authenticated.Group("/lecturers")
	{
		lecturers.GET("", c.Lecturer.GetLecturers)
		lecturers.GET("/:id", c.Lecturer.GetLecturerByID)
		lecturers.POST("", adminOnly, c.Lecturer.CreateLecturer)
		lecturers.PUT("/:id", adminOnly, c.Lecturer.UpdateLecturer)
		lecturers.DELETE("/:id", adminOnly, c.Lecturer.DeleteLecturer)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", adminOrLecturer, c.Student.GetStudents)
		students.GET("/:id", c.Student.GetStudentByID)
		students.POST("", adminOnly, c.Student.CreateStudent)
		students.PUT("/:id", adminOnly, c.Student.UpdateStudent)
		students.DELETE("/:id", adminOnly, c.Student.DeleteStudent)

		// Attendance aggregation; the service scopes rows per caller
		students.GET("/:id/attendance", c.Attendance.GetStudentAttendance)
		students.GET("/:id/attendance/summary", c.Attendance.GetStudentSummary)
	}

	schedules := authenticated.Group("/schedules")
	{
		schedules.GET("", c.Schedule.GetSchedules)
		schedules.GET("/:id", c.Schedule.GetScheduleByID)
		schedules.POST("", adminOnly, c.Schedule.CreateSchedule)
		schedules.PUT("/:id", adminOnly, c.Schedule.UpdateSchedule)
		schedules.DELETE("/:id", adminOnly, c.Schedule.DeleteSchedule)

		schedules.POST("/:id/attendance", adminOrLecturer, c.Attendance.RecordMeeting)
		schedules.GET("/:id/attendance", adminOrLecturer, c.Attendance.GetMeetingAttendance)
	}

	grades := authenticated.Group("/grades")
	{
		grades.GET("", c.Grade.GetGrades)
		grades.GET("/:id", c.Grade.GetGradeByID)
		grades.PUT("", adminOrLecturer, c.Grade.UpsertGrade)
		grades.DELETE("/:id", adminOnly, c.Grade.DeleteGrade)
	}
	authenticated.GET("/me/grades", c.Grade.GetMyGrades)

	assignments := authenticated.Group("/assignments")
	{
		assignments.GET("", c.Assignment.GetAssignments)
		assignments.GET("/:id", c.Assignment.GetAssignmentByID)
		assignments.POST("", adminOrLecturer, c.Assignment.CreateAssignment)
		assignments.PUT("/:id", adminOrLecturer, c.Assignment.UpdateAssignment)
		assignments.DELETE("/:id", adminOrLecturer, c.Assignment.DeleteAssignment)

		assignments.POST("/:id/submissions", authMiddleware.RequireRoles(models.RoleStudent), c.Assignment.SubmitAssignment)
		assignments.GET("/:id/submissions", adminOrLecturer, c.Assignment.GetSubmissions)
		assignments.GET("/:id/submissions/mine", authMiddleware.RequireRoles(models.RoleStudent), c.Assignment.GetMySubmission)
	}
	authenticated.PUT("/submissions/:id/score", adminOrLecturer, c.Assignment.ScoreSubmission)

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", c.Announcement.GetAnnouncements)
		announcements.GET("/unread", c.Announcement.CountUnread)
		announcements.GET("/:id", c.Announcement.GetAnnouncementByID)
		announcements.POST("", adminOnly, c.Announcement.CreateAnnouncement)
		announcements.PUT("/:id", adminOnly, c.Announcement.UpdateAnnouncement)
		announcements.DELETE("/:id", adminOnly, c.Announcement.DeleteAnnouncement)
		announcements.POST("/:id/read", c.Announcement.MarkRead)
	}
}
