package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Confidence expresses how strongly a conclusion is supported
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Validate checks if the Confidence is one of the known levels
func (c Confidence) Validate() error {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return nil
	}
	return goerr.New("invalid confidence level", goerr.V("confidence", c))
}

// String returns the string representation of Confidence
func (c Confidence) String() string {
	return string(c)
}
