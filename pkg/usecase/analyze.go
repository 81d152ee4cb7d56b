package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/interfaces"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/service/analysis"
	"github.com/rpad300/godmode-sub015/pkg/service/notify"
	"github.com/rpad300/godmode-sub015/pkg/service/transcript"
	"github.com/rpad300/godmode-sub015/pkg/utils/errutil"
	"github.com/rpad300/godmode-sub015/pkg/utils/logging"
)

// AnalysisUseCase orchestrates one incremental analysis pass: extraction,
// prompt packaging, LLM analysis, and persistence of the resulting deltas.
type AnalysisUseCase struct {
	repo            interfaces.Repository
	extraction      *ExtractionUseCase
	analysisService analysis.Service
	notifyService   notify.Service
}

// NewAnalysisUseCase creates a new AnalysisUseCase
func NewAnalysisUseCase(
	repo interfaces.Repository,
	extraction *ExtractionUseCase,
	analysisSvc analysis.Service,
	notifySvc notify.Service,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		repo:            repo,
		extraction:      extraction,
		analysisService: analysisSvc,
		notifyService:   notifySvc,
	}
}

// AnalyzeOption holds options for one analysis pass
type AnalyzeOption struct {
	ProjectID   string
	PersonID    types.PersonID
	PersonName  string
	Aliases     []string
	Transcripts []TranscriptInput
	Dimensions  []analysis.Dimension
	Prompt      string
	MaxTokens   int // token budget shared across all transcripts; 0 uses the default
}

// AnalyzeResult holds the outcome of one analysis pass
type AnalyzeResult struct {
	Run      *model.AnalysisRun
	Profile  *model.Profile
	Deltas   []model.DimensionDelta
	Evidence []*model.EvidenceEntry
}

// Analyze runs one incremental analysis pass for a person over the given
// transcripts. The profile is refined in place: unchanged dimensions keep
// their prior narrative, and new evidence entries are appended to the bank.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, opts AnalyzeOption) (*AnalyzeResult, error) {
	if uc.analysisService == nil {
		return nil, goerr.New("analysis service is not configured")
	}
	if err := opts.PersonID.Validate(); err != nil {
		return nil, err
	}
	startedAt := time.Now().UTC()

	extractions := uc.extraction.ExtractAll(ctx, opts.ProjectID, opts.PersonID, opts.PersonName, opts.Aliases, opts.Transcripts)

	excerpts, totals := uc.packageExcerpts(extractions, opts.MaxTokens)

	profile, err := uc.loadProfile(ctx, opts.ProjectID, opts.PersonID, opts.PersonName)
	if err != nil {
		return nil, err
	}

	evidenceBank, err := uc.repo.Evidence().ListByPersonID(ctx, opts.ProjectID, opts.PersonID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load evidence bank", goerr.V("personID", opts.PersonID))
	}

	input := analysis.Input{
		PersonName: opts.PersonName,
		Profile:    profile,
		Evidence:   evidenceBank,
		Excerpts:   excerpts,
		Dimensions: opts.Dimensions,
		Prompt:     opts.Prompt,
	}

	result, err := uc.analysisService.Analyze(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "analysis failed", goerr.V("personID", opts.PersonID))
	}

	run := &model.AnalysisRun{
		PersonID:           opts.PersonID,
		DocumentCount:      len(opts.Transcripts),
		InterventionsTotal: totals.interventions,
		InterventionsUsed:  totals.used,
		EstimatedTokens:    totals.tokens,
		Contradictions:     len(result.Contradictions),
		StartedAt:          startedAt,
	}
	run.ID = model.NewAnalysisID()

	saved := uc.persistEvidence(ctx, opts.ProjectID, opts.PersonID, run.ID, result.Evidence)
	run.EvidenceCreated = len(saved)

	uc.applyDeltas(profile, result.Deltas, result.Confidence)
	if err := uc.repo.Profile().Upsert(ctx, opts.ProjectID, profile); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert profile", goerr.V("personID", opts.PersonID))
	}

	run.FinishedAt = time.Now().UTC()
	if _, err := uc.repo.AnalysisRun().Create(ctx, opts.ProjectID, run); err != nil {
		errutil.Handle(ctx, err, "failed to record analysis run")
	}

	if uc.notifyService != nil {
		if err := uc.notifyService.AnalysisCompleted(ctx, opts.ProjectID, run, result.Deltas); err != nil {
			errutil.Handle(ctx, err, "failed to send analysis notification")
		}
	}

	logging.From(ctx).Info("analysis pass completed",
		"personID", opts.PersonID,
		"analysisID", run.ID,
		"documents", run.DocumentCount,
		"interventionsUsed", run.InterventionsUsed,
		"evidenceCreated", run.EvidenceCreated,
		"contradictions", run.Contradictions,
	)

	return &AnalyzeResult{
		Run:      run,
		Profile:  profile,
		Deltas:   result.Deltas,
		Evidence: saved,
	}, nil
}

// GetProfile retrieves the current profile snapshot for a person
func (uc *AnalysisUseCase) GetProfile(ctx context.Context, projectID string, personID types.PersonID) (*model.Profile, error) {
	return uc.repo.Profile().Get(ctx, projectID, personID)
}

// ListRuns retrieves analysis run records for a person, newest first
func (uc *AnalysisUseCase) ListRuns(ctx context.Context, projectID string, personID types.PersonID) ([]*model.AnalysisRun, error) {
	return uc.repo.AnalysisRun().ListByPersonID(ctx, projectID, personID)
}

// ListPersonEvidence retrieves the evidence bank of one person, oldest first
func (uc *AnalysisUseCase) ListPersonEvidence(ctx context.Context, projectID string, personID types.PersonID) ([]*model.EvidenceEntry, error) {
	return uc.repo.Evidence().ListByPersonID(ctx, projectID, personID)
}

// ListEvidence retrieves evidence entries for a project with pagination
func (uc *AnalysisUseCase) ListEvidence(ctx context.Context, projectID string, limit, offset int) ([]*model.EvidenceEntry, int, error) {
	return uc.repo.Evidence().ListWithPagination(ctx, projectID, limit, offset)
}

type excerptTotals struct {
	interventions int
	used          int
	tokens        int
}

// packageExcerpts budget-formats each extraction. The token budget is
// divided evenly across documents that yielded interventions, so one
// verbose meeting cannot starve the others.
func (uc *AnalysisUseCase) packageExcerpts(extractions []*model.ExtractionResult, maxTokens int) ([]analysis.DocumentExcerpt, excerptTotals) {
	if maxTokens <= 0 {
		maxTokens = transcript.DefaultMaxTokens
	}

	nonEmpty := 0
	for _, ex := range extractions {
		if ex.InterventionCount > 0 {
			nonEmpty++
		}
	}

	var excerpts []analysis.DocumentExcerpt
	var totals excerptTotals

	for _, ex := range extractions {
		totals.interventions += ex.InterventionCount
		if ex.InterventionCount == 0 {
			continue
		}

		formatted := transcript.FormatForPrompt(ex.Interventions, transcript.FormatOptions{
			MaxTokens:      maxTokens / nonEmpty,
			IncludeContext: true,
		})

		totals.used += formatted.IncludedCount
		totals.tokens += formatted.EstimatedTokens

		excerpts = append(excerpts, analysis.DocumentExcerpt{
			DocumentID: string(ex.DocumentID),
			Filename:   ex.Filename,
			Formatted:  formatted,
		})
	}

	return excerpts, totals
}

// loadProfile fetches the existing profile, starting a fresh one on the
// first analysis pass for a person.
func (uc *AnalysisUseCase) loadProfile(ctx context.Context, projectID string, personID types.PersonID, personName string) (*model.Profile, error) {
	profile, err := uc.repo.Profile().Get(ctx, projectID, personID)
	if err != nil {
		if isNotFound(err) {
			return model.NewProfile(personID, personName), nil
		}
		return nil, goerr.Wrap(err, "failed to load profile", goerr.V("personID", personID))
	}
	return profile, nil
}

// persistEvidence stores the evidence candidates, stamping ownership.
// A failed write drops that entry and continues with the rest.
func (uc *AnalysisUseCase) persistEvidence(ctx context.Context, projectID string, personID types.PersonID, analysisID model.AnalysisID, candidates []*model.EvidenceEntry) []*model.EvidenceEntry {
	saved := make([]*model.EvidenceEntry, 0, len(candidates))
	for _, entry := range candidates {
		entry.PersonID = personID
		entry.AnalysisID = analysisID

		created, err := uc.repo.Evidence().Create(ctx, projectID, entry)
		if err != nil {
			errutil.Handle(ctx, err, "failed to save evidence entry")
			continue
		}
		saved = append(saved, created)
	}
	return saved
}

// applyDeltas folds the per-dimension deltas into the profile. Only
// refined and new_discovered narratives replace stored text.
func (uc *AnalysisUseCase) applyDeltas(profile *model.Profile, deltas []model.DimensionDelta, confidence string) {
	for _, d := range deltas {
		if d.Status.ChangesProfile() && d.Narrative != "" {
			profile.Dimensions[d.Dimension] = d.Narrative
		}
	}

	c := types.Confidence(confidence)
	if c.Validate() == nil {
		profile.ConfidenceLevel = c
	}
	profile.UpdatedAt = time.Now().UTC()
}
