package models

import "time"

// Announcement defines the announcement model based on the 'announcements'
// table. Audience selects which roles see it.
type Announcement struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Title     string    `json:"title" db:"title" example:"Libur Semester"`
	Body      string    `json:"body" db:"body"`
	Audience  Audience  `json:"audience" db:"audience" example:"STUDENT"`
	CreatedBy int64     `json:"createdBy" db:"created_by" example:"1"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Read is populated on list endpoints for the requesting identity.
	Read bool `json:"read"`
}

// AnnouncementRead defines a read receipt based on the 'announcement_reads'
// table. The (announcement_id, user_id) pair is the primary key, which is
// what makes concurrent mark-as-read calls collapse to a single row.
type AnnouncementRead struct {
	AnnouncementID int64     `json:"announcementId" db:"announcement_id"`
	UserID         int64     `json:"userId" db:"user_id"`
	ReadAt         time.Time `json:"readAt" db:"read_at"`
}
