package dto

// UpsertGradeRequest carries component scores for one student in one course.
// The final score and letter grade are computed server-side; clients cannot
// submit them.
type UpsertGradeRequest struct {
	StudentID    int64    `json:"studentId" binding:"required"`
	CourseID     int64    `json:"courseId" binding:"required"`
	Semester     int      `json:"semester" binding:"required,min=1,max=14"`
	AcademicYear string   `json:"academicYear" binding:"required" example:"2024/2025"`
	Assignment   *float64 `json:"assignmentScore,omitempty"`
	Midterm      *float64 `json:"midtermScore,omitempty"`
	FinalExam    *float64 `json:"finalExamScore,omitempty"`
}

// GradeFilter narrows grade list queries. All fields are optional; the
// role-scoped gate intersects whatever is requested with the caller's scope.
type GradeFilter struct {
	StudentID    int64  `form:"studentId"`
	CourseID     int64  `form:"courseId"`
	Semester     int    `form:"semester"`
	AcademicYear string `form:"academicYear"`
}
