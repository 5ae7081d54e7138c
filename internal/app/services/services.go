package services

import (
	"github.com/campuskit/siakad/internal/app/repositories"
	"github.com/campuskit/siakad/internal/db"
	"github.com/campuskit/siakad/internal/pkg/auth"
	"github.com/campuskit/siakad/internal/pkg/filestorage"
	"github.com/campuskit/siakad/internal/pkg/helpers"
)

// Services holds all the service instances
type Services struct {
	AuthService         AuthService
	FacultyService      FacultyService
	ProgramService      ProgramService
	ClassService        ClassService
	CourseService       CourseService
	LecturerService     LecturerService
	StudentService      StudentService
	ScheduleService     ScheduleService
	AttendanceService   AttendanceService
	GradeService        GradeService
	AssignmentService   AssignmentService
	AnnouncementService AnnouncementService
	DashboardService    DashboardService
}

// NewServices initializes all services
func NewServices(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.LecturerRepository,
			repos.StudentRepository,
			jwtService,
		),
		FacultyService: NewFacultyService(repos.FacultyRepository),
		ProgramService: NewProgramService(repos.ProgramRepository, repos.FacultyRepository),
		ClassService:   NewClassService(repos.ClassRepository, repos.StudentRepository),
		CourseService:  NewCourseService(repos.CourseRepository, repos.ProgramRepository),
		LecturerService: NewLecturerService(
			database,
			repos.UserRepository,
			repos.LecturerRepository,
			repos.ProgramRepository,
		),
		StudentService: NewStudentService(
			database,
			repos.UserRepository,
			repos.StudentRepository,
			repos.ProgramRepository,
			repos.ClassRepository,
		),
		ScheduleService: NewScheduleService(
			repos.ScheduleRepository,
			repos.ClassRepository,
			repos.CourseRepository,
			repos.LecturerRepository,
			repos.StudentRepository,
		),
		AttendanceService: NewAttendanceService(
			database,
			repos.AttendanceRepository,
			repos.ScheduleRepository,
			repos.StudentRepository,
		),
		GradeService: NewGradeService(repos.GradeRepository, repos.ScheduleRepository),
		AssignmentService: NewAssignmentService(
			repos.AssignmentRepository,
			repos.SubmissionRepository,
			repos.ScheduleRepository,
			repos.StudentRepository,
			storage,
		),
		AnnouncementService: NewAnnouncementService(repos.AnnouncementRepository),
		DashboardService: NewDashboardService(
			repos.StatsRepository,
			repos.ScheduleRepository,
			repos.AttendanceRepository,
			repos.GradeRepository,
			repos.AnnouncementRepository,
		),
	}
}

// pageWindow converts a 1-based page request into the offset and limit the
// repositories expect.
func pageWindow(page, size int) (offset, limit int) {
	off, lim := helpers.CalculateOffsetLimit(page, size)
	return int(off), lim
}
