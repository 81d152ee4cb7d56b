package model

import (
	"time"

	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// Intervention is one contiguous speaking turn attributed to a single
// speaker within a transcript. It is immutable once created.
type Intervention struct {
	Timestamp  string // empty when the transcript format carries no time marker
	Speaker    string
	Text       string
	Context    string // preceding remarks by other speakers, "Speaker: excerpt" form
	WordCount  int
	LineNumber int // line index where the turn began, used for chronological ordering only
}

// ExtractionResult holds all interventions extracted from a single
// transcript for a single person.
type ExtractionResult struct {
	PersonName        string
	DocumentID        types.DocumentID
	Filename          string
	Interventions     []Intervention
	TotalWordCount    int
	InterventionCount int
	ExtractedAt       time.Time
}
