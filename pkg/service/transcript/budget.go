package transcript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
)

const (
	// DefaultMaxTokens is the budget used when FormatOptions.MaxTokens is zero
	DefaultMaxTokens = 8000

	// charsPerToken is the rough character-to-token ratio used for estimation
	charsPerToken = 4

	// budgetSafetyMargin reserves headroom below the hard budget
	budgetSafetyMargin = 0.9

	// contextRenderLimit caps the rendered context line
	contextRenderLimit = 150
)

// FormatOptions controls prompt packaging
type FormatOptions struct {
	MaxTokens      int
	IncludeContext bool
}

// FormatResult is the budget-constrained prompt text handed to the
// semantic-analysis collaborator.
type FormatResult struct {
	FormattedText   string
	IncludedCount   int
	TotalCount      int
	EstimatedTokens int
}

// FormatForPrompt selects a subset of interventions that fits the token
// budget, favoring longer turns, then restores chronological order.
// Rejected candidates are dropped whole; a single turn is never truncated.
func FormatForPrompt(interventions []model.Intervention, opts FormatOptions) *FormatResult {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	target := int(float64(maxTokens) * budgetSafetyMargin)

	type candidate struct {
		iv       model.Intervention
		rendered string
		tokens   int
	}

	candidates := make([]candidate, 0, len(interventions))
	for _, iv := range interventions {
		rendered := renderIntervention(iv, opts.IncludeContext)
		candidates = append(candidates, candidate{
			iv:       iv,
			rendered: rendered,
			tokens:   estimateTokens(rendered),
		})
	}

	// Word count as a proxy for informativeness: bigger turns first
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].iv.WordCount > candidates[order[b]].iv.WordCount
	})

	var accepted []candidate
	used := 0
	for _, idx := range order {
		c := candidates[idx]
		if used+c.tokens > target {
			continue
		}
		used += c.tokens
		accepted = append(accepted, c)
	}

	// Selection was by size; output reads in transcript order
	sort.SliceStable(accepted, func(a, b int) bool {
		return accepted[a].iv.LineNumber < accepted[b].iv.LineNumber
	})

	parts := make([]string, 0, len(accepted))
	for _, c := range accepted {
		parts = append(parts, c.rendered)
	}

	return &FormatResult{
		FormattedText:   strings.Join(parts, "\n\n"),
		IncludedCount:   len(accepted),
		TotalCount:      len(interventions),
		EstimatedTokens: used,
	}
}

func estimateTokens(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}

func renderIntervention(iv model.Intervention, includeContext bool) string {
	var sb strings.Builder

	if iv.Timestamp != "" {
		fmt.Fprintf(&sb, "[%s]\n", iv.Timestamp)
	}
	if includeContext && iv.Context != "" {
		ctx := iv.Context
		if len(ctx) > contextRenderLimit {
			ctx = ctx[:contextRenderLimit]
		}
		fmt.Fprintf(&sb, "(Context: %s)\n", ctx)
	}
	fmt.Fprintf(&sb, "%q", iv.Text)

	return sb.String()
}
