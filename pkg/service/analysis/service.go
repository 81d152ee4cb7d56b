package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// client implements Service interface
type client struct {
	llmClient gollem.LLMClient
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new analysis service with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Analyze refines the person's profile using only the newly observed
// interventions, returning per-dimension deltas, evidence candidates, and
// contradictions against prior conclusions.
func (c *client) Analyze(ctx context.Context, input Input) (*Result, error) {
	if !hasNewMaterial(input.Excerpts) {
		return &Result{}, nil
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(c.buildResponseSchema()),
		gollem.WithSessionSystemPrompt(buildSystemPrompt(input.Dimensions)),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(input)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}

	var llmResp llmResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &llmResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	return convertResponse(&llmResp), nil
}

func hasNewMaterial(excerpts []DocumentExcerpt) bool {
	for _, ex := range excerpts {
		if ex.Formatted != nil && ex.Formatted.IncludedCount > 0 {
			return true
		}
	}
	return false
}

// convertResponse maps the LLM output into domain values, dropping entries
// with invalid enum values instead of failing the whole run.
func convertResponse(resp *llmResponse) *Result {
	result := &Result{Confidence: resp.Confidence}

	for _, d := range resp.Deltas {
		status := types.DimensionStatus(d.Status)
		if status.Validate() != nil {
			continue
		}
		result.Deltas = append(result.Deltas, model.DimensionDelta{
			Dimension: d.Dimension,
			Status:    status,
			Narrative: d.Narrative,
		})
	}

	for _, e := range resp.Evidence {
		evType := types.EvidenceType(e.EvidenceType)
		if evType.Validate() != nil {
			continue
		}
		confidence := types.Confidence(e.Confidence)
		if confidence.Validate() != nil {
			confidence = types.ConfidenceLow
		}
		result.Evidence = append(result.Evidence, &model.EvidenceEntry{
			Quote:                 e.Quote,
			Context:               e.Context,
			SourceDocumentID:      types.DocumentID(e.SourceDocumentID),
			TimestampInTranscript: e.Timestamp,
			EvidenceType:          evType,
			SupportsTrait:         e.SupportsTrait,
			Confidence:            confidence,
			IsPrimary:             e.IsPrimary,
		})
	}

	for _, c := range resp.Contradictions {
		result.Contradictions = append(result.Contradictions, model.Contradiction{
			Dimension:       c.Dimension,
			PriorConclusion: c.PriorConclusion,
			NewEvidence:     c.NewEvidence,
		})
	}

	return result
}

// defaultAnalysisPrompt is used when no custom prompt is provided
const defaultAnalysisPrompt = "Refine the behavioral profile using only the newly observed interventions.\nDo not restate conclusions that the new material neither confirms nor challenges."

// buildSystemPrompt creates the fixed system prompt for LLM analysis
func buildSystemPrompt(dimensions []Dimension) string {
	var sb strings.Builder

	sb.WriteString("You are a behavioral profiling assistant. Your task is to refine an existing behavioral profile of one person using newly observed speaking turns from meeting transcripts.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Compare the new interventions against the existing profile and evidence bank.\n")
	sb.WriteString("2. For each profile dimension, report a delta with status:\n")
	sb.WriteString("   - confirmed: the new material supports the existing conclusion\n")
	sb.WriteString("   - refined: the conclusion should be adjusted; provide the full replacement narrative\n")
	sb.WriteString("   - new_discovered: the dimension had no conclusion before; provide the narrative\n")
	sb.WriteString("   - unchanged: the new material says nothing about this dimension\n")
	sb.WriteString("3. Extract evidence entries: literal quotes from the new interventions, each tagged with an evidence type, the trait it supports, a confidence level, and the source document ID given in the section header.\n")
	sb.WriteString("4. Report contradictions where new evidence conflicts with a prior conclusion.\n")
	sb.WriteString("5. Answer in the same language as the transcript content.\n")

	if len(dimensions) > 0 {
		sb.WriteString("\n## Profile dimensions:\n\n")
		for _, d := range dimensions {
			fmt.Fprintf(&sb, "- %s (%s): %s\n", d.ID, d.Name, d.Description)
		}
	}

	sb.WriteString("\n## Evidence types:\n\n")
	for _, t := range types.EvidenceTypes {
		fmt.Fprintf(&sb, "- %s\n", t)
	}

	return sb.String()
}

// buildUserPrompt creates the user prompt with the profile snapshot,
// evidence bank, and new interventions grouped per source document
func buildUserPrompt(input Input) string {
	var sb strings.Builder

	prompt := input.Prompt
	if prompt == "" {
		prompt = defaultAnalysisPrompt
	}
	sb.WriteString(prompt)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "## Person: %s\n\n", input.PersonName)

	sb.WriteString("## Existing profile:\n\n")
	if input.Profile == nil || len(input.Profile.Dimensions) == 0 {
		sb.WriteString("(no prior profile)\n")
	} else {
		fmt.Fprintf(&sb, "Overall confidence: %s\n\n", input.Profile.ConfidenceLevel)
		for dim, narrative := range input.Profile.Dimensions {
			fmt.Fprintf(&sb, "### %s\n%s\n\n", dim, narrative)
		}
	}

	sb.WriteString("\n## Existing evidence bank:\n\n")
	if len(input.Evidence) == 0 {
		sb.WriteString("(empty)\n")
	} else {
		for _, e := range input.Evidence {
			fmt.Fprintf(&sb, "- [%s/%s] %q (supports: %s)\n", e.EvidenceType, e.Confidence, e.Quote, e.SupportsTrait)
		}
	}

	sb.WriteString("\n## New interventions:\n\n")
	for _, ex := range input.Excerpts {
		if ex.Formatted == nil || ex.Formatted.IncludedCount == 0 {
			continue
		}
		fmt.Fprintf(&sb, "### Document %s (%s)\n\n", ex.DocumentID, ex.Filename)
		sb.WriteString(ex.Formatted.FormattedText)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// buildResponseSchema creates the JSON schema for structured output
func (c *client) buildResponseSchema() *gollem.Parameter {
	statusValues := []string{
		string(types.DimensionConfirmed),
		string(types.DimensionRefined),
		string(types.DimensionNewDiscovered),
		string(types.DimensionUnchanged),
	}
	confidenceValues := []string{
		string(types.ConfidenceLow),
		string(types.ConfidenceMedium),
		string(types.ConfidenceHigh),
	}
	evidenceTypeValues := make([]string, 0, len(types.EvidenceTypes))
	for _, t := range types.EvidenceTypes {
		evidenceTypeValues = append(evidenceTypeValues, string(t))
	}

	return &gollem.Parameter{
		Title:       "IncrementalAnalysisResponse",
		Description: "Structured delta refining a behavioral profile from new interventions",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"deltas": {
				Type:        gollem.TypeArray,
				Description: "Per-dimension outcome of this analysis pass",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"dimension": {
							Type:        gollem.TypeString,
							Description: "Profile dimension ID",
							Required:    true,
						},
						"status": {
							Type:        gollem.TypeString,
							Description: "Outcome for this dimension",
							Enum:        statusValues,
							Required:    true,
						},
						"narrative": {
							Type:        gollem.TypeString,
							Description: "Replacement narrative for refined/new_discovered, empty otherwise",
						},
					},
				},
			},
			"evidence": {
				Type:        gollem.TypeArray,
				Description: "Evidence entries extracted from the new interventions",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"quote": {
							Type:        gollem.TypeString,
							Description: "Literal quote from an intervention",
							Required:    true,
						},
						"context": {
							Type:        gollem.TypeString,
							Description: "Surrounding conversational context",
						},
						"source_document_id": {
							Type:        gollem.TypeString,
							Description: "Document ID from the section header the quote came from",
						},
						"timestamp": {
							Type:        gollem.TypeString,
							Description: "Timestamp within the transcript, empty if unknown",
						},
						"evidence_type": {
							Type:        gollem.TypeString,
							Description: "Behavioral evidence classification",
							Enum:        evidenceTypeValues,
							Required:    true,
						},
						"supports_trait": {
							Type:        gollem.TypeString,
							Description: "The trait or claim this evidence supports",
							Required:    true,
						},
						"confidence": {
							Type:        gollem.TypeString,
							Description: "Confidence in this evidence",
							Enum:        confidenceValues,
							Required:    true,
						},
						"is_primary": {
							Type:        gollem.TypeBoolean,
							Description: "Whether this is primary evidence for the trait",
						},
					},
				},
			},
			"contradictions": {
				Type:        gollem.TypeArray,
				Description: "New evidence conflicting with prior conclusions",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"dimension": {
							Type:        gollem.TypeString,
							Description: "Profile dimension the contradiction concerns",
							Required:    true,
						},
						"prior_conclusion": {
							Type:        gollem.TypeString,
							Description: "The prior conclusion being contradicted",
							Required:    true,
						},
						"new_evidence": {
							Type:        gollem.TypeString,
							Description: "The new evidence causing the conflict",
							Required:    true,
						},
					},
				},
			},
			"confidence": {
				Type:        gollem.TypeString,
				Description: "Suggested overall profile confidence after this pass",
				Enum:        confidenceValues,
				Required:    true,
			},
		},
	}
}
