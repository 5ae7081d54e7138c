package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	FacultyRepository      *FacultyRepository
	ProgramRepository      *ProgramRepository
	ClassRepository        *ClassRepository
	CourseRepository       *CourseRepository
	LecturerRepository     *LecturerRepository
	StudentRepository      *StudentRepository
	ScheduleRepository     *ScheduleRepository
	AttendanceRepository   *AttendanceRepository
	GradeRepository        *GradeRepository
	AssignmentRepository   *AssignmentRepository
	SubmissionRepository   *SubmissionRepository
	AnnouncementRepository *AnnouncementRepository
	StatsRepository        *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		FacultyRepository:      NewFacultyRepository(db),
		ProgramRepository:      NewProgramRepository(db),
		ClassRepository:        NewClassRepository(db),
		CourseRepository:       NewCourseRepository(db),
		LecturerRepository:     NewLecturerRepository(db),
		StudentRepository:      NewStudentRepository(db),
		ScheduleRepository:     NewScheduleRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		GradeRepository:        NewGradeRepository(db),
		AssignmentRepository:   NewAssignmentRepository(db),
		SubmissionRepository:   NewSubmissionRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		StatsRepository:        NewStatsRepository(db),
	}
}
