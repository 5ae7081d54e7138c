// Package academics holds the pure aggregation rules for grades and
// attendance. Nothing in here touches the database; services feed rows in and
// persist what comes out.
package academics

import (
	"fmt"
	"math"

	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// Component weights for the final score. Assignment and midterm carry 30%
// each, the final exam 40%.
const (
	WeightAssignment = 0.30
	WeightMidterm    = 0.30
	WeightFinalExam  = 0.40
)

// Letter grade thresholds applied to the weighted final score.
const (
	ThresholdA = 85.0
	ThresholdB = 70.0
	ThresholdC = 55.0
	ThresholdD = 40.0
)

// MinScore and MaxScore bound every component score.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// validateScore rejects a component score outside [0,100].
func validateScore(name string, score float64) error {
	if score < MinScore || score > MaxScore {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("%s score must be between %g and %g, got %g", name, MinScore, MaxScore, score)).
			WithField(name)
	}
	return nil
}

// ComputeFinalScore computes the weighted final score from the three
// component scores, rounded to two decimal places. Components a caller has no
// value for are passed as 0; values outside [0,100] are rejected before any
// aggregation happens.
func ComputeFinalScore(assignment, midterm, finalExam float64) (float64, error) {
	if err := validateScore("assignment", assignment); err != nil {
		return 0, err
	}
	if err := validateScore("midterm", midterm); err != nil {
		return 0, err
	}
	if err := validateScore("finalExam", finalExam); err != nil {
		return 0, err
	}

	final := WeightAssignment*assignment + WeightMidterm*midterm + WeightFinalExam*finalExam
	return math.Round(final*100) / 100, nil
}

// LetterGrade maps a final score to its letter grade.
func LetterGrade(finalScore float64) string {
	switch {
	case finalScore >= ThresholdA:
		return "A"
	case finalScore >= ThresholdB:
		return "B"
	case finalScore >= ThresholdC:
		return "C"
	case finalScore >= ThresholdD:
		return "D"
	default:
		return "E"
	}
}

// GradeOutcome bundles the two derived grade values.
type GradeOutcome struct {
	FinalScore  float64 `json:"finalScore"`
	LetterGrade string  `json:"letterGrade"`
}

// ComputeGrade computes both derived values in one call.
func ComputeGrade(assignment, midterm, finalExam float64) (GradeOutcome, error) {
	final, err := ComputeFinalScore(assignment, midterm, finalExam)
	if err != nil {
		return GradeOutcome{}, err
	}
	return GradeOutcome{
		FinalScore:  final,
		LetterGrade: LetterGrade(final),
	}, nil
}
