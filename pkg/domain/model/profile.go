package model

import (
	"time"

	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// Profile is the behavioral profile snapshot of a person. The narrative
// dimensions are treated as opaque text keyed by dimension ID; this core
// only applies structured deltas to them.
type Profile struct {
	PersonID        types.PersonID
	PersonName      string
	ConfidenceLevel types.Confidence
	Dimensions      map[string]string // dimension ID -> narrative
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProfile returns an empty profile for a person
func NewProfile(personID types.PersonID, personName string) *Profile {
	return &Profile{
		PersonID:        personID,
		PersonName:      personName,
		ConfidenceLevel: types.ConfidenceLow,
		Dimensions:      map[string]string{},
	}
}

// DimensionDelta is the per-dimension outcome of one incremental analysis
type DimensionDelta struct {
	Dimension string
	Status    types.DimensionStatus
	Narrative string // replacement narrative, meaningful for refined/new_discovered
}

// Contradiction records new evidence that conflicts with a prior conclusion
type Contradiction struct {
	Dimension       string
	PriorConclusion string
	NewEvidence     string
}
