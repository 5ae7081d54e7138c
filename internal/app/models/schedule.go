package models

import "time"

// Schedule defines a recurring weekly class session based on the 'schedules'
// table: course + lecturer + class + time slot + room.
type Schedule struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	ClassID    int64  `json:"classId" db:"class_id" example:"1"`
	CourseID   int64  `json:"courseId" db:"course_id" example:"1"`
	LecturerID int64  `json:"lecturerId" db:"lecturer_id" example:"1"`
	Weekday    int    `json:"weekday" db:"weekday" example:"1"`          // 0=Sunday .. 6=Saturday
	StartTime  string `json:"startTime" db:"start_time" example:"08:00"` // HH:MM, 24h clock
	EndTime    string `json:"endTime" db:"end_time" example:"09:40"`
	Room       string `json:"room" db:"room" example:"R2.04"`

	Class    *Class    `json:"class,omitempty"`    // Relation, no db tag
	Course   *Course   `json:"course,omitempty"`   // Relation, no db tag
	Lecturer *Lecturer `json:"lecturer,omitempty"` // Relation, no db tag
}

// Attendance defines a single attendance record based on the 'attendance'
// table. One row per (schedule, student, date).
type Attendance struct {
	ID         int64            `json:"id" db:"id" example:"1"`
	ScheduleID int64            `json:"scheduleId" db:"schedule_id" example:"1"`
	StudentID  int64            `json:"studentId" db:"student_id" example:"1"`
	Date       time.Time        `json:"date" db:"date" example:"2024-09-02T00:00:00Z"`
	Status     AttendanceStatus `json:"status" db:"status" example:"PRESENT"`

	Schedule *Schedule `json:"schedule,omitempty"` // Relation, no db tag
	Student  *Student  `json:"student,omitempty"`  // Relation, no db tag
}
