package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// PersonID represents a unique identifier for a profiled person
type PersonID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the PersonID is valid
func (p PersonID) Validate() error {
	if p == "" {
		return goerr.New("person ID cannot be empty")
	}
	if !idPattern.MatchString(string(p)) {
		return goerr.New("person ID must be lowercase alphanumeric with hyphens", goerr.V("id", p))
	}
	return nil
}

// String returns the string representation of PersonID
func (p PersonID) String() string {
	return string(p)
}
