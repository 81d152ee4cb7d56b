package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// DocumentID represents a unique identifier for a transcript document
type DocumentID string

// Validate checks if the DocumentID is valid
func (d DocumentID) Validate() error {
	if d == "" {
		return goerr.New("document ID cannot be empty")
	}
	return nil
}

// String returns the string representation of DocumentID
func (d DocumentID) String() string {
	return string(d)
}
