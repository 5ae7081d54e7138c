package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin    RoleType = "ADMIN"
	RoleLecturer RoleType = "LECTURER"
	RoleStudent  RoleType = "STUDENT"
)

// Valid reports whether the role is a supported value.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return true
	default:
		return false
	}
}

// AttendanceStatus represents the status recorded for a single meeting.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceExcused AttendanceStatus = "EXCUSED"
	AttendanceSick    AttendanceStatus = "SICK"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// Valid reports whether the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceExcused, AttendanceSick, AttendanceAbsent:
		return true
	default:
		return false
	}
}

// Audience defines which roles an announcement targets.
type Audience string

const (
	AudienceAdmin    Audience = "ADMIN"
	AudienceLecturer Audience = "LECTURER"
	AudienceStudent  Audience = "STUDENT"
	AudienceAll      Audience = "ALL"
)

// Valid reports whether the audience is a supported value.
func (a Audience) Valid() bool {
	switch a {
	case AudienceAdmin, AudienceLecturer, AudienceStudent, AudienceAll:
		return true
	default:
		return false
	}
}

// Matches reports whether an announcement with this audience is visible to
// the given role.
func (a Audience) Matches(role RoleType) bool {
	if a == AudienceAll {
		return true
	}
	return string(a) == string(role)
}
