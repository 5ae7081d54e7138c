package academics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

func TestComputeFinalScore(t *testing.T) {
	tests := []struct {
		name       string
		assignment float64
		midterm    float64
		finalExam  float64
		want       float64
		wantErr    bool
	}{
		{name: "all full marks", assignment: 100, midterm: 100, finalExam: 100, want: 100},
		{name: "all zero", assignment: 0, midterm: 0, finalExam: 0, want: 0},
		{name: "weighted mix", assignment: 80, midterm: 75, finalExam: 90, want: 82.5},
		{name: "low scores", assignment: 50, midterm: 40, finalExam: 30, want: 39},
		{name: "rounds to two decimals", assignment: 33.333, midterm: 33.333, finalExam: 33.333, want: 33.33},
		{name: "negative assignment", assignment: -1, midterm: 50, finalExam: 50, wantErr: true},
		{name: "assignment above max", assignment: 101, midterm: 50, finalExam: 50, wantErr: true},
		{name: "negative midterm", assignment: 50, midterm: -1, finalExam: 50, wantErr: true},
		{name: "final exam above max", assignment: 50, midterm: 50, finalExam: 101, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFinalScore(tt.assignment, tt.midterm, tt.finalExam)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeFinalScoreDeterministic(t *testing.T) {
	// Same inputs must always produce the same outputs.
	inputs := []struct{ a, m, f float64 }{
		{0, 0, 0},
		{12.34, 56.78, 90.12},
		{99.99, 0.01, 50},
		{100, 100, 100},
	}
	for _, in := range inputs {
		first, err := ComputeFinalScore(in.a, in.m, in.f)
		require.NoError(t, err)
		second, err := ComputeFinalScore(in.a, in.m, in.f)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, LetterGrade(first), LetterGrade(second))
	}
}

func TestLetterGradeBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{85.00, "A"},
		{84.99, "B"},
		{70.00, "B"},
		{69.99, "C"},
		{55.00, "C"},
		{54.99, "D"},
		{40.00, "D"},
		{39.99, "E"},
		{0, "E"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.score), "score %.2f", tt.score)
	}
}

func TestComputeGrade(t *testing.T) {
	outcome, err := ComputeGrade(80, 75, 90)
	require.NoError(t, err)
	assert.Equal(t, 82.5, outcome.FinalScore)
	assert.Equal(t, "B", outcome.LetterGrade)

	// Low component scores land in the failing band.
	outcome, err = ComputeGrade(50, 40, 30)
	require.NoError(t, err)
	assert.Equal(t, 39.0, outcome.FinalScore)
	assert.Equal(t, "E", outcome.LetterGrade)

	_, err = ComputeGrade(-1, 0, 0)
	require.Error(t, err)
}
