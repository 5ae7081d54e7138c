package models

// Grade defines the grade model based on the 'grades' table. Component scores
// are decimals in [0,100]; FinalScore and LetterGrade are computed
// server-side and never accepted from clients. Semester and academic year are
// stored here authoritatively; schedule-side term data is display-only.
type Grade struct {
	ID             int64   `json:"id" db:"id" example:"1"`
	StudentID      int64   `json:"studentId" db:"student_id" example:"1"`
	CourseID       int64   `json:"courseId" db:"course_id" example:"1"`
	Semester       int     `json:"semester" db:"semester" example:"3"`
	AcademicYear   string  `json:"academicYear" db:"academic_year" example:"2024/2025"`
	Assignment     float64 `json:"assignmentScore" db:"assignment_score" example:"80"`
	Midterm        float64 `json:"midtermScore" db:"midterm_score" example:"75"`
	FinalExam      float64 `json:"finalExamScore" db:"final_exam_score" example:"90"`
	FinalScore     float64 `json:"finalScore" db:"final_score" example:"82.5"`
	LetterGrade    string  `json:"letterGrade" db:"letter_grade" example:"B"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
	Course  *Course  `json:"course,omitempty"`  // Relation, no db tag
}
