package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// AnalysisID is a UUID-based identifier for AnalysisRun
type AnalysisID string

// NewAnalysisID generates a new UUID v4 AnalysisID
func NewAnalysisID() AnalysisID {
	return AnalysisID(uuid.New().String())
}

// AnalysisRun records one incremental analysis pass over a person's newly
// observed interventions.
type AnalysisRun struct {
	ID                 AnalysisID
	PersonID           types.PersonID
	DocumentCount      int
	InterventionsTotal int
	InterventionsUsed  int
	EstimatedTokens    int
	EvidenceCreated    int
	Contradictions     int
	StartedAt          time.Time
	FinishedAt         time.Time
	CreatedAt          time.Time
}
