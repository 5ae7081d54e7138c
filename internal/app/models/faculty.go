package models

// Faculty defines the faculty model based on the 'faculties' table
type Faculty struct {
	ID   int64  `json:"id" db:"id" example:"1"`                    // Unique identifier for the faculty
	Name string `json:"name" db:"name" example:"Fakultas Teknik"`  // Faculty name
	Code string `json:"code" db:"code" example:"FT"`               // Short unique code
}

// Program defines the study program model based on the 'programs' table
type Program struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	FacultyID int64  `json:"facultyId" db:"faculty_id" example:"1"`
	Name      string `json:"name" db:"name" example:"Teknik Informatika"`
	Code      string `json:"code" db:"code" example:"TI"`
	Degree    string `json:"degree" db:"degree" example:"S1"` // Degree level (D3, S1, S2, ...)

	Faculty *Faculty `json:"faculty,omitempty"` // Relation, no db tag
}
