package dto

// CreateFacultyRequest carries the fields for creating a faculty
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required" example:"Fakultas Teknik"`
	Code string `json:"code" binding:"required" example:"FT"`
}

// UpdateFacultyRequest carries the fields for updating a faculty
type UpdateFacultyRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateProgramRequest carries the fields for creating a study program
type CreateProgramRequest struct {
	FacultyID int64  `json:"facultyId" binding:"required" example:"1"`
	Name      string `json:"name" binding:"required" example:"Teknik Informatika"`
	Code      string `json:"code" binding:"required" example:"TI"`
	Degree    string `json:"degree" binding:"required" example:"S1"`
}

// UpdateProgramRequest carries the fields for updating a study program
type UpdateProgramRequest struct {
	FacultyID int64  `json:"facultyId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Degree    string `json:"degree" binding:"required"`
}

// CreateClassRequest carries the fields for creating a class
type CreateClassRequest struct {
	ProgramID  int64  `json:"programId" binding:"required" example:"1"`
	Name       string `json:"name" binding:"required" example:"TI-3A"`
	CohortYear int    `json:"cohortYear" binding:"required" example:"2023"`
}

// UpdateClassRequest carries the fields for updating a class
type UpdateClassRequest struct {
	ProgramID  int64  `json:"programId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	CohortYear int    `json:"cohortYear" binding:"required"`
}

// CreateCourseRequest carries the fields for creating a course
type CreateCourseRequest struct {
	ProgramID   int64  `json:"programId" binding:"required" example:"1"`
	Code        string `json:"code" binding:"required" example:"TI201"`
	Name        string `json:"name" binding:"required" example:"Struktur Data"`
	CreditHours int    `json:"creditHours" binding:"required,min=1,max=6" example:"3"`
}

// UpdateCourseRequest carries the fields for updating a course
type UpdateCourseRequest struct {
	ProgramID   int64  `json:"programId" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	CreditHours int    `json:"creditHours" binding:"required,min=1,max=6"`
}
