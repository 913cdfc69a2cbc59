// Package kpi holds the shared target math: default goal values, numeric
// input coercion, and the percent-to-goal gauge calculation. It is the one
// place this logic lives so every surface (editor, CLI rendering) classifies
// progress the same way.
package kpi

import (
	"strconv"
	"strings"

	"github.com/stafflens/goalboard/internal/models"
)

// OnTrackThreshold is the percent-to-goal at or above which progress is
// classified as on track.
const OnTrackThreshold = 90.0

// percentCap bounds the gauge so runaway ratios stay renderable.
const percentCap = 999.0

// DefaultGoals returns the built-in default targets used to seed the editor
// before an organization has saved anything. Server values override these
// key by key on load.
func DefaultGoals() models.GoalSet {
	return models.GoalSet{
		models.GoalRevenueYTD: 1500000,
		models.GoalUnitsYTD:   1500,
		models.GoalGPYTD:      420000,
		models.GoalRevenueQTD: 500000,
		models.GoalUnitsQTD:   375,
		models.GoalGPQTD:      140000,
		models.GoalRevenueMTD: 300000,
		models.GoalUnitsMTD:   120,
		models.GoalGPMTD:      80000,
	}
}

// MergeDefaults lays the stored goal set over the defaults key by key.
// Keys missing from stored keep their default; unknown stored keys are
// carried through untouched.
func MergeDefaults(stored models.GoalSet) models.GoalSet {
	merged := DefaultGoals()
	for k, v := range stored {
		merged[k] = v
	}
	return merged
}

// SanitizeNumber coerces free-form field input to a number. All characters
// other than digits and dots are stripped before parsing; empty or
// unparsable input becomes zero rather than an error, so a stray "$" or
// thousands separator never blocks an edit.
func SanitizeNumber(input string) float64 {
	var b strings.Builder
	for _, r := range input {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

// PercentToGoal computes progress toward a target as a percentage clamped
// to [0, 999]. A non-positive target yields zero rather than a division
// error.
func PercentToGoal(current, target float64) float64 {
	if target <= 0 {
		return 0
	}

	percent := current / target * 100
	if percent < 0 {
		return 0
	}
	if percent > percentCap {
		return percentCap
	}
	return percent
}

// OnTrack classifies a percent-to-goal value against the 90% threshold.
func OnTrack(percent float64) bool {
	return percent >= OnTrackThreshold
}
