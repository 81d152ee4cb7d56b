package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// extractionKey is the composite cache key (projectID + documentID + personID)
type extractionKey struct {
	projectID  string
	documentID types.DocumentID
	personID   types.PersonID
}

type extractionRepository struct {
	mu      sync.RWMutex
	entries map[extractionKey]*model.ExtractionResult
}

func newExtractionRepository() *extractionRepository {
	return &extractionRepository{
		entries: make(map[extractionKey]*model.ExtractionResult),
	}
}

func copyExtraction(r *model.ExtractionResult) *model.ExtractionResult {
	copied := &model.ExtractionResult{
		PersonName:        r.PersonName,
		DocumentID:        r.DocumentID,
		Filename:          r.Filename,
		TotalWordCount:    r.TotalWordCount,
		InterventionCount: r.InterventionCount,
		ExtractedAt:       r.ExtractedAt,
	}
	if r.Interventions != nil {
		copied.Interventions = make([]model.Intervention, len(r.Interventions))
		copy(copied.Interventions, r.Interventions)
	}
	return copied
}

func (r *extractionRepository) Get(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID) (*model.ExtractionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := extractionKey{projectID: projectID, documentID: documentID, personID: personID}
	entry, exists := r.entries[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "extraction not found",
			goerr.V("documentID", documentID), goerr.V("personID", personID))
	}

	return copyExtraction(entry), nil
}

func (r *extractionRepository) Upsert(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID, result *model.ExtractionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := extractionKey{projectID: projectID, documentID: documentID, personID: personID}
	r.entries[key] = copyExtraction(result)
	return nil
}
