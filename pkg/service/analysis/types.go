package analysis

import (
	"context"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/service/transcript"
)

// Service defines the interface for incremental behavioral analysis. The
// collaborator receives only newly observed interventions together with
// the existing profile and evidence bank, and returns structured deltas
// instead of a full profile rewrite.
type Service interface {
	Analyze(ctx context.Context, input Input) (*Result, error)
}

// Dimension describes one narrative dimension of a behavioral profile
type Dimension struct {
	ID          string
	Name        string
	Description string
}

// DocumentExcerpt is the budget-formatted new interventions of one transcript
type DocumentExcerpt struct {
	DocumentID string
	Filename   string
	Formatted  *transcript.FormatResult
}

// Input represents the input for one incremental analysis pass
type Input struct {
	PersonName string
	Profile    *model.Profile
	Evidence   []*model.EvidenceEntry
	Excerpts   []DocumentExcerpt
	Dimensions []Dimension
	Prompt     string // Custom prompt for LLM analysis (optional, uses default if empty)
}

// Result is the structured delta produced by the analysis
type Result struct {
	Deltas         []model.DimensionDelta
	Evidence       []*model.EvidenceEntry // candidates without IDs; caller persists them
	Contradictions []model.Contradiction
	Confidence     string // overall confidence suggested for the profile
}

// llmResponse is the structured output from the LLM
type llmResponse struct {
	Deltas         []llmDelta         `json:"deltas"`
	Evidence       []llmEvidence      `json:"evidence"`
	Contradictions []llmContradiction `json:"contradictions"`
	Confidence     string             `json:"confidence"`
}

type llmDelta struct {
	Dimension string `json:"dimension"`
	Status    string `json:"status"`
	Narrative string `json:"narrative"`
}

type llmEvidence struct {
	Quote            string `json:"quote"`
	Context          string `json:"context"`
	SourceDocumentID string `json:"source_document_id"`
	Timestamp        string `json:"timestamp"`
	EvidenceType     string `json:"evidence_type"`
	SupportsTrait    string `json:"supports_trait"`
	Confidence       string `json:"confidence"`
	IsPrimary        bool   `json:"is_primary"`
}

type llmContradiction struct {
	Dimension       string `json:"dimension"`
	PriorConclusion string `json:"prior_conclusion"`
	NewEvidence     string `json:"new_evidence"`
}
