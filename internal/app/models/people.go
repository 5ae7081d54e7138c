package models

// Lecturer defines the lecturer model based on the 'lecturers' table
type Lecturer struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	UserID    int64  `json:"userId" db:"user_id" example:"5"`
	NIDN      string `json:"nidn" db:"nidn" example:"0412098801"` // National lecturer identification number
	Name      string `json:"name" db:"name" example:"Budi Santoso"`
	ProgramID int64  `json:"programId" db:"program_id" example:"1"`

	User    *User    `json:"user,omitempty"`    // Relation, no db tag
	Program *Program `json:"program,omitempty"` // Relation, no db tag
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	UserID     int64  `json:"userId" db:"user_id" example:"7"`
	NIM        string `json:"nim" db:"nim" example:"21104001"` // Enrollment number, unique
	Name       string `json:"name" db:"name" example:"Siti Rahma"`
	ProgramID  int64  `json:"programId" db:"program_id" example:"1"`
	ClassID    *int64 `json:"classId,omitempty" db:"class_id"` // Nullable until assigned to a class
	CohortYear int    `json:"cohortYear" db:"cohort_year" example:"2023"`
	Sex        string `json:"sex" db:"sex" example:"F"` // L or P following campus records, M/F accepted
	Address    string `json:"address" db:"address" example:"Jl. Melati No. 3, Sleman"`

	User    *User    `json:"user,omitempty"`    // Relation, no db tag
	Program *Program `json:"program,omitempty"` // Relation, no db tag
	Class   *Class   `json:"class,omitempty"`   // Relation, no db tag
}
