package service

// Letter grades awarded by the classification ladder.
const (
	GradeOutstanding  = "O"
	GradeExcellent    = "A+"
	GradeVeryGood     = "A"
	GradeGood         = "B+"
	GradeSatisfactory = "B"
	GradeUngraded     = "U"
	GradeAbsent       = "UA"
)

// Classify maps a numeric score and an attendance flag to a letter grade.
// Absence overrides any score. The ladder is evaluated high to low and the
// first matching band wins. The function is total: it performs no bounds
// checking, so out-of-range scores simply land in the bottom band.
// Range validation is the caller's job.
func Classify(score float64, present bool) string {
	if !present {
		return GradeAbsent
	}

	switch {
	case score >= 90:
		return GradeOutstanding
	case score >= 80:
		return GradeExcellent
	case score >= 70:
		return GradeVeryGood
	case score >= 60:
		return GradeGood
	case score >= 50:
		return GradeSatisfactory
	default:
		return GradeUngraded
	}
}
