package dto

// CreateAssignmentRequest carries the fields for publishing an assignment
type CreateAssignmentRequest struct {
	CourseID    int64  `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" binding:"required" example:"2024-10-01T23:59:00Z"`
	// LecturerID names the owning lecturer when an admin creates the
	// assignment. Lecturers always publish as themselves and may omit it.
	LecturerID int64 `json:"lecturerId"`
}

// UpdateAssignmentRequest carries the mutable assignment fields
type UpdateAssignmentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" binding:"required"`
}

// ScoreSubmissionRequest carries a lecturer's review of a submission
type ScoreSubmissionRequest struct {
	Score float64 `json:"score" binding:"min=0,max=100"`
	Notes string  `json:"notes"`
}
