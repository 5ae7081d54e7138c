package models

import "time"

// Assignment defines coursework published by a lecturer based on the
// 'assignments' table
type Assignment struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	CourseID    int64     `json:"courseId" db:"course_id" example:"1"`
	LecturerID  int64     `json:"lecturerId" db:"lecturer_id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Tugas 2: Linked List"`
	Description string    `json:"description" db:"description"`
	Deadline    time.Time `json:"deadline" db:"deadline" example:"2024-10-01T23:59:00Z"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Course   *Course   `json:"course,omitempty"`   // Relation, no db tag
	Lecturer *Lecturer `json:"lecturer,omitempty"` // Relation, no db tag
}

// Submission defines a student's answer to an assignment based on the
// 'submissions' table. One row per (assignment, student).
type Submission struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	AssignmentID int64     `json:"assignmentId" db:"assignment_id" example:"1"`
	StudentID    int64     `json:"studentId" db:"student_id" example:"1"`
	FilePath     string    `json:"filePath" db:"file_path" example:"uploads/submissions/7e6c.pdf"`
	SubmittedAt  time.Time `json:"submittedAt" db:"submitted_at"`
	Score        *float64  `json:"score,omitempty" db:"score"` // Nullable until reviewed
	Notes        *string   `json:"notes,omitempty" db:"notes"`

	Assignment *Assignment `json:"assignment,omitempty"` // Relation, no db tag
	Student    *Student    `json:"student,omitempty"`    // Relation, no db tag
}
