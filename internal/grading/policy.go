// ============================================================================
// internal/grading/policy.go
// Letter grade derivation from numeric marks
// ============================================================================

package grading

import (
	"math"

	"studentdesk/internal/shared"
)

// Letter grades in descending order of performance.
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

// Letter maps marks to a letter grade: >=90 A, >=80 B, >=70 C, >=60 D,
// else F. Marks that are not a real number are rejected rather than
// silently graded.
func Letter(marks float64) (string, error) {
	if math.IsNaN(marks) || math.IsInf(marks, 0) {
		return "", shared.NewValidationError("marks", "must be a number")
	}

	switch {
	case marks >= 90:
		return GradeA, nil
	case marks >= 80:
		return GradeB, nil
	case marks >= 70:
		return GradeC, nil
	case marks >= 60:
		return GradeD, nil
	default:
		return GradeF, nil
	}
}

// LetterOrDefault derives a grade and falls back to F when marks are not
// coercible to a number. Used only by the load-time backfill of legacy
// records; all mutation paths validate marks up front.
func LetterOrDefault(marks float64) string {
	letter, err := Letter(marks)
	if err != nil {
		return GradeF
	}
	return letter
}

// IsPassing reports whether a letter grade is a pass (anything above F).
func IsPassing(letter string) bool {
	switch letter {
	case GradeA, GradeB, GradeC, GradeD:
		return true
	}
	return false
}
