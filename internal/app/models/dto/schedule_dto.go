package dto

// CreateScheduleRequest carries the fields for creating a schedule slot
type CreateScheduleRequest struct {
	ClassID    int64  `json:"classId" binding:"required"`
	CourseID   int64  `json:"courseId" binding:"required"`
	LecturerID int64  `json:"lecturerId" binding:"required"`
	Weekday    int    `json:"weekday" binding:"min=0,max=6" example:"1"`
	StartTime  string `json:"startTime" binding:"required" example:"08:00"`
	EndTime    string `json:"endTime" binding:"required" example:"09:40"`
	Room       string `json:"room" binding:"required" example:"R2.04"`
}

// UpdateScheduleRequest carries the fields for updating a schedule slot
type UpdateScheduleRequest struct {
	ClassID    int64  `json:"classId" binding:"required"`
	CourseID   int64  `json:"courseId" binding:"required"`
	LecturerID int64  `json:"lecturerId" binding:"required"`
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
	Room       string `json:"room" binding:"required"`
}

// RecordAttendanceRequest records attendance for one meeting of a schedule.
// Entries not previously recorded are inserted; existing (schedule, student,
// date) rows are updated in place.
type RecordAttendanceRequest struct {
	Date    string                   `json:"date" binding:"required" example:"2024-09-02"`
	Entries []AttendanceEntryRequest `json:"entries" binding:"required,dive"`
}

// AttendanceEntryRequest is one student's status within a meeting
type AttendanceEntryRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=PRESENT EXCUSED SICK ABSENT"`
}
