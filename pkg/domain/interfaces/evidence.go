package interfaces

import (
	"context"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// EvidenceRepository persists behavioral evidence entries. Entries are
// append-only; analysis runs add new entries instead of rewriting old ones.
type EvidenceRepository interface {
	// Create appends a new evidence entry
	Create(ctx context.Context, projectID string, entry *model.EvidenceEntry) (*model.EvidenceEntry, error)

	// Get retrieves an evidence entry by ID
	Get(ctx context.Context, projectID string, id model.EvidenceID) (*model.EvidenceEntry, error)

	// ListByPersonID retrieves all evidence entries for a person
	ListByPersonID(ctx context.Context, projectID string, personID types.PersonID) ([]*model.EvidenceEntry, error)

	// ListByPersonIDs retrieves evidence entries for multiple persons at once
	ListByPersonIDs(ctx context.Context, projectID string, personIDs []types.PersonID) (map[types.PersonID][]*model.EvidenceEntry, error)

	// ListWithPagination retrieves evidence entries ordered by CreatedAt descending.
	// Returns entries, total count, and error.
	ListWithPagination(ctx context.Context, projectID string, limit, offset int) ([]*model.EvidenceEntry, int, error)
}
