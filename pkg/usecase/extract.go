package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rpad300/godmode-sub015/pkg/domain/interfaces"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/repository/firestore"
	"github.com/rpad300/godmode-sub015/pkg/repository/memory"
	"github.com/rpad300/godmode-sub015/pkg/service/transcript"
	"github.com/rpad300/godmode-sub015/pkg/utils/errutil"
	"github.com/rpad300/godmode-sub015/pkg/utils/logging"
)

// ExtractionUseCase extracts one person's speaking turns from transcripts,
// with a write-through cache keyed by (projectID, documentID, personID).
type ExtractionUseCase struct {
	repo interfaces.Repository
}

// NewExtractionUseCase creates a new ExtractionUseCase
func NewExtractionUseCase(repo interfaces.Repository) *ExtractionUseCase {
	return &ExtractionUseCase{
		repo: repo,
	}
}

// TranscriptInput is one raw transcript to extract from
type TranscriptInput struct {
	ID       types.DocumentID
	Filename string
	Content  string
}

// isNotFound reports whether err is a not-found from either backend
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

// CachedResult retrieves an extraction from the cache. Any storage failure
// degrades to a miss so a broken cache never blocks extraction.
func (uc *ExtractionUseCase) CachedResult(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID) *model.ExtractionResult {
	result, err := uc.repo.Extraction().Get(ctx, projectID, documentID, personID)
	if err != nil {
		if !isNotFound(err) {
			logging.From(ctx).Warn("extraction cache read failed, treating as miss",
				"documentID", documentID,
				"personID", personID,
				"error", err,
			)
		}
		return nil
	}
	return result
}

// Extract parses a single transcript for the person, consulting the cache
// first and storing the result on a miss. Cache write failures are logged
// and swallowed; the fresh result is returned either way.
func (uc *ExtractionUseCase) Extract(ctx context.Context, projectID string, personID types.PersonID, personName string, aliases []string, input TranscriptInput) *model.ExtractionResult {
	documentID := input.ID
	if documentID == "" {
		documentID = types.DocumentID(input.Filename)
	}

	if cached := uc.CachedResult(ctx, projectID, documentID, personID); cached != nil {
		logging.From(ctx).Debug("extraction cache hit",
			"documentID", documentID,
			"personID", personID,
			"interventions", cached.InterventionCount,
		)
		return cached
	}

	result := transcript.Extract(input.Content, personName, aliases, input.Filename)
	result.DocumentID = documentID
	result.ExtractedAt = time.Now().UTC()

	if err := uc.repo.Extraction().Upsert(ctx, projectID, documentID, personID, result); err != nil {
		errutil.Handle(ctx, err, "failed to cache extraction result")
	}

	return result
}

// ExtractAll parses every transcript for the person, one result per input
// in the same order. Individual transcripts never fail: a transcript where
// the person does not speak yields an empty result.
func (uc *ExtractionUseCase) ExtractAll(ctx context.Context, projectID string, personID types.PersonID, personName string, aliases []string, inputs []TranscriptInput) []*model.ExtractionResult {
	results := make([]*model.ExtractionResult, 0, len(inputs))
	for _, input := range inputs {
		results = append(results, uc.Extract(ctx, projectID, personID, personName, aliases, input))
	}
	return results
}
