package interfaces

import (
	"context"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// ExtractionRepository is the cache boundary for transcript extraction
// results, keyed by (projectID, documentID, personID). At most one entry
// exists per key.
type ExtractionRepository interface {
	// Get retrieves a cached extraction result, or ErrNotFound
	Get(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID) (*model.ExtractionResult, error)

	// Upsert stores an extraction result, replacing any entry under the same key
	Upsert(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID, result *model.ExtractionResult) error
}
