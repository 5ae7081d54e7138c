package models

// Class defines a cohort grouping of students based on the 'classes' table
type Class struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	ProgramID  int64  `json:"programId" db:"program_id" example:"1"`
	Name       string `json:"name" db:"name" example:"TI-3A"`
	CohortYear int    `json:"cohortYear" db:"cohort_year" example:"2023"`

	Program *Program `json:"program,omitempty"` // Relation, no db tag
}

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          int64  `json:"id" db:"id" example:"1"`
	ProgramID   int64  `json:"programId" db:"program_id" example:"1"`
	Code        string `json:"code" db:"code" example:"TI201"` // Unique within the program
	Name        string `json:"name" db:"name" example:"Struktur Data"`
	CreditHours int    `json:"creditHours" db:"credit_hours" example:"3"`

	Program *Program `json:"program,omitempty"` // Relation, no db tag
}
