// Package valueobject contains domain value objects for the CareSync system.
package valueobject

import "time"

// Fertile window offsets relative to the ovulation date.
const (
	FertileDaysBeforeOvulation = 5
	FertileDaysAfterOvulation  = 1
)

// PredictionResult holds the forward-looking estimates derived from a profile.
// It is never persisted on its own.
type PredictionResult struct {
	NextPeriodDate           time.Time
	NextPeriodProbability    float64
	OvulationDate            time.Time
	OvulationProbability     float64
	FertileWindowStart       time.Time
	FertileWindowEnd         time.Time
	FertileWindowProbability float64
}

// InFertileWindow reports whether day falls inside the predicted fertile window.
func (r PredictionResult) InFertileWindow(day time.Time) bool {
	return BetweenInclusive(day, r.FertileWindowStart, r.FertileWindowEnd)
}
