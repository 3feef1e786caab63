// internal/scoring/aggregate.go
package scoring

import (
	"math"

	"jobseeker-scoring/internal/models"
)

const (
	MaxTotalScore = 100.0

	// RequiredScore is the minimum total score allowed to apply for jobs.
	RequiredScore = 60.0

	// HistoryLimit is the number of history entries kept per score record.
	HistoryLimit = 10
)

const (
	excellentThreshold = 85.0
	strongThreshold    = 75.0
	readyThreshold     = 60.0
	basicThreshold     = 40.0
)

// Total sums the breakdown and rounds it to one decimal.
func Total(b models.Breakdown) float64 {
	return clamp(Round1(b.Sum()), 0, MaxTotalScore)
}

// TierFor maps a total score onto the tier ladder, evaluated top-down.
func TierFor(total float64) models.Tier {
	switch {
	case total >= excellentThreshold:
		return models.TierExcellent
	case total >= strongThreshold:
		return models.TierStrong
	case total >= readyThreshold:
		return models.TierReady
	case total >= basicThreshold:
		return models.TierBasic
	default:
		return models.TierIncomplete
	}
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
