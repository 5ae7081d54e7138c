package dto

// CreateAnnouncementRequest carries the fields for publishing an announcement
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" binding:"required,oneof=ADMIN LECTURER STUDENT ALL"`
}

// UpdateAnnouncementRequest carries the mutable announcement fields
type UpdateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" binding:"required,oneof=ADMIN LECTURER STUDENT ALL"`
}

// UnreadCountResponse reports how many visible announcements are unread
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
