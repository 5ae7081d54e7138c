package academics

import (
	"math"

	"github.com/campuskit/siakad/internal/app/models"
)

// AttendanceSummary is the aggregate view over a set of attendance records.
// Percentage is the share of PRESENT records, rounded to one decimal place.
type AttendanceSummary struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Excused    int     `json:"excused"`
	Sick       int     `json:"sick"`
	Unexcused  int     `json:"unexcused"`
	Percentage float64 `json:"percentage"`
}

// SummarizeAttendance counts records per status and computes the presence
// percentage. An empty input yields a zero summary with Percentage 0; the
// division is guarded so there is never a NaN.
func SummarizeAttendance(records []models.Attendance) AttendanceSummary {
	var s AttendanceSummary
	for _, rec := range records {
		s.Total++
		switch rec.Status {
		case models.AttendancePresent:
			s.Present++
		case models.AttendanceExcused:
			s.Excused++
		case models.AttendanceSick:
			s.Sick++
		case models.AttendanceAbsent:
			s.Unexcused++
		}
	}

	if s.Total == 0 {
		return s
	}

	pct := float64(s.Present) / float64(s.Total) * 100
	s.Percentage = math.Round(pct*10) / 10
	return s
}
