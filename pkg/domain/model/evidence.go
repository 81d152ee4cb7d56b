package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// EvidenceID is a UUID-based identifier for EvidenceEntry
type EvidenceID string

// NewEvidenceID generates a new UUID v4 EvidenceID
func NewEvidenceID() EvidenceID {
	return EvidenceID(uuid.New().String())
}

// EvidenceEntry is a quoted excerpt plus context that supports or refutes
// a specific behavioral claim. Entries accumulate additively across
// analysis runs and are never overwritten.
type EvidenceEntry struct {
	ID                    EvidenceID
	PersonID              types.PersonID
	AnalysisID            AnalysisID // run that produced this entry
	Quote                 string
	Context               string
	SourceDocumentID      types.DocumentID
	TimestampInTranscript string
	EvidenceType          types.EvidenceType
	SupportsTrait         string
	Confidence            types.Confidence
	IsPrimary             bool
	CreatedAt             time.Time
}
