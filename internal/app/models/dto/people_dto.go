package dto

// CreateLecturerRequest creates a lecturer together with its user account.
// The two inserts run in one transaction.
type CreateLecturerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	NIDN      string `json:"nidn" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ProgramID int64  `json:"programId" binding:"required"`
}

// UpdateLecturerRequest carries the mutable lecturer fields
type UpdateLecturerRequest struct {
	NIDN      string `json:"nidn" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ProgramID int64  `json:"programId" binding:"required"`
}

// CreateStudentRequest creates a student together with its user account.
// The two inserts run in one transaction.
type CreateStudentRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	NIM        string `json:"nim" binding:"required"`
	Name       string `json:"name" binding:"required"`
	ProgramID  int64  `json:"programId" binding:"required"`
	ClassID    *int64 `json:"classId,omitempty"`
	CohortYear int    `json:"cohortYear" binding:"required"`
	Sex        string `json:"sex" binding:"required,oneof=M F L P"`
	Address    string `json:"address"`
}

// UpdateStudentRequest carries the mutable student fields
type UpdateStudentRequest struct {
	NIM        string `json:"nim" binding:"required"`
	Name       string `json:"name" binding:"required"`
	ProgramID  int64  `json:"programId" binding:"required"`
	ClassID    *int64 `json:"classId,omitempty"`
	CohortYear int    `json:"cohortYear" binding:"required"`
	Sex        string `json:"sex" binding:"required,oneof=M F L P"`
	Address    string `json:"address"`
}
