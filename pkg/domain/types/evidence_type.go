package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// EvidenceType classifies what behavioral claim a piece of evidence supports
type EvidenceType string

const (
	EvidenceCommunicationStyle  EvidenceType = "communication_style"
	EvidenceMotivation          EvidenceType = "motivation"
	EvidencePressureResponse    EvidenceType = "pressure_response"
	EvidenceInfluenceTactic     EvidenceType = "influence_tactic"
	EvidenceVulnerability       EvidenceType = "vulnerability"
	EvidenceDefenseTrigger      EvidenceType = "defense_trigger"
	EvidenceCooperationSignal   EvidenceType = "cooperation_signal"
	EvidencePowerIndicator      EvidenceType = "power_indicator"
	EvidenceWarningSign         EvidenceType = "warning_sign"
	EvidenceRelationshipDynamic EvidenceType = "relationship_dynamic"
)

// EvidenceTypes lists all valid evidence types
var EvidenceTypes = []EvidenceType{
	EvidenceCommunicationStyle,
	EvidenceMotivation,
	EvidencePressureResponse,
	EvidenceInfluenceTactic,
	EvidenceVulnerability,
	EvidenceDefenseTrigger,
	EvidenceCooperationSignal,
	EvidencePowerIndicator,
	EvidenceWarningSign,
	EvidenceRelationshipDynamic,
}

// Validate checks if the EvidenceType is one of the known values
func (e EvidenceType) Validate() error {
	for _, t := range EvidenceTypes {
		if e == t {
			return nil
		}
	}
	return goerr.New("invalid evidence type", goerr.V("type", e))
}

// String returns the string representation of EvidenceType
func (e EvidenceType) String() string {
	return string(e)
}
