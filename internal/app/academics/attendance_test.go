package academics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuskit/siakad/internal/app/models"
)

func records(statuses ...models.AttendanceStatus) []models.Attendance {
	recs := make([]models.Attendance, 0, len(statuses))
	for i, st := range statuses {
		recs = append(recs, models.Attendance{ID: int64(i + 1), Status: st})
	}
	return recs
}

func TestSummarizeAttendance(t *testing.T) {
	tests := []struct {
		name string
		recs []models.Attendance
		want AttendanceSummary
	}{
		{
			name: "empty set yields zero percentage, not an error",
			recs: nil,
			want: AttendanceSummary{},
		},
		{
			name: "all present",
			recs: records(
				models.AttendancePresent, models.AttendancePresent, models.AttendancePresent,
				models.AttendancePresent, models.AttendancePresent, models.AttendancePresent,
				models.AttendancePresent, models.AttendancePresent, models.AttendancePresent,
				models.AttendancePresent,
			),
			want: AttendanceSummary{Total: 10, Present: 10, Percentage: 100},
		},
		{
			name: "mixed statuses",
			recs: records(
				models.AttendancePresent, models.AttendancePresent, models.AttendanceSick,
				models.AttendanceExcused, models.AttendanceAbsent, models.AttendancePresent,
			),
			want: AttendanceSummary{Total: 6, Present: 3, Excused: 1, Sick: 1, Unexcused: 1, Percentage: 50},
		},
		{
			name: "percentage rounds to one decimal",
			recs: records(models.AttendancePresent, models.AttendancePresent, models.AttendanceAbsent),
			want: AttendanceSummary{Total: 3, Present: 2, Unexcused: 1, Percentage: 66.7},
		},
		{
			name: "no presents",
			recs: records(models.AttendanceAbsent, models.AttendanceSick),
			want: AttendanceSummary{Total: 2, Sick: 1, Unexcused: 1, Percentage: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeAttendance(tt.recs)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.Percentage != got.Percentage, "percentage must never be NaN")
		})
	}
}
