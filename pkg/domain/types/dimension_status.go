package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// DimensionStatus tags the outcome of an incremental analysis for one
// profile dimension
type DimensionStatus string

const (
	DimensionConfirmed     DimensionStatus = "confirmed"
	DimensionRefined       DimensionStatus = "refined"
	DimensionNewDiscovered DimensionStatus = "new_discovered"
	DimensionUnchanged     DimensionStatus = "unchanged"
)

// Validate checks if the DimensionStatus is one of the known values
func (d DimensionStatus) Validate() error {
	switch d {
	case DimensionConfirmed, DimensionRefined, DimensionNewDiscovered, DimensionUnchanged:
		return nil
	}
	return goerr.New("invalid dimension status", goerr.V("status", d))
}

// String returns the string representation of DimensionStatus
func (d DimensionStatus) String() string {
	return string(d)
}

// ChangesProfile reports whether a delta with this status should rewrite
// the dimension narrative in the stored profile.
func (d DimensionStatus) ChangesProfile() bool {
	return d == DimensionRefined || d == DimensionNewDiscovered
}
