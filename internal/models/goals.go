package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known goal keys. The store does not enforce this set; unknown keys
// submitted by clients are preserved opaquely so new metrics can be added
// without a schema change.
const (
	GoalRevenueYTD = "revenueYTD"
	GoalUnitsYTD   = "unitsYTD"
	GoalGPYTD      = "gpYTD"
	GoalRevenueQTD = "revenueQTD"
	GoalUnitsQTD   = "unitsQTD"
	GoalGPQTD      = "gpQTD"
	GoalRevenueMTD = "revenueMTD"
	GoalUnitsMTD   = "unitsMTD"
	GoalGPMTD      = "gpMTD"
)

// GoalSet maps a goal name to its numeric target value.
type GoalSet map[string]float64

// Clone returns a copy of the goal set. A nil receiver yields an empty,
// non-nil set so callers can treat absence as an empty mapping.
func (g GoalSet) Clone() GoalSet {
	clone := make(GoalSet, len(g))
	for k, v := range g {
		clone[k] = v
	}
	return clone
}

// GoalsRecord is the single per-organization record of numeric targets.
// At most one record exists per organization; every save replaces the
// mapping wholesale rather than merging field by field.
type GoalsRecord struct {
	OrgID     uuid.UUID // UUIDv7, unique key
	Goals     GoalSet
	UpdatedAt time.Time
}
