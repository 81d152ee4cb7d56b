package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

type evidenceBucketKey struct {
	projectID string
}

type evidenceRepository struct {
	mu      sync.RWMutex
	entries map[evidenceBucketKey]map[model.EvidenceID]*model.EvidenceEntry
}

func newEvidenceRepository() *evidenceRepository {
	return &evidenceRepository{
		entries: make(map[evidenceBucketKey]map[model.EvidenceID]*model.EvidenceEntry),
	}
}

func copyEvidence(e *model.EvidenceEntry) *model.EvidenceEntry {
	copied := *e
	return &copied
}

func (r *evidenceRepository) Create(ctx context.Context, projectID string, entry *model.EvidenceEntry) (*model.EvidenceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := evidenceBucketKey{projectID: projectID}
	if _, exists := r.entries[key]; !exists {
		r.entries[key] = make(map[model.EvidenceID]*model.EvidenceEntry)
	}

	created := copyEvidence(entry)
	if created.ID == "" {
		created.ID = model.NewEvidenceID()
	}
	created.CreatedAt = time.Now().UTC()

	r.entries[key][created.ID] = created
	return copyEvidence(created), nil
}

func (r *evidenceRepository) Get(ctx context.Context, projectID string, id model.EvidenceID) (*model.EvidenceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.entries[evidenceBucketKey{projectID: projectID}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
	}

	entry, exists := bucket[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
	}

	return copyEvidence(entry), nil
}

func (r *evidenceRepository) ListByPersonID(ctx context.Context, projectID string, personID types.PersonID) ([]*model.EvidenceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.entries[evidenceBucketKey{projectID: projectID}]
	if !exists {
		return []*model.EvidenceEntry{}, nil
	}

	result := make([]*model.EvidenceEntry, 0)
	for _, e := range bucket {
		if e.PersonID == personID {
			result = append(result, copyEvidence(e))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *evidenceRepository) ListByPersonIDs(ctx context.Context, projectID string, personIDs []types.PersonID) (map[types.PersonID][]*model.EvidenceEntry, error) {
	result := make(map[types.PersonID][]*model.EvidenceEntry, len(personIDs))
	for _, personID := range personIDs {
		entries, err := r.ListByPersonID(ctx, projectID, personID)
		if err != nil {
			return nil, err
		}
		result[personID] = entries
	}
	return result, nil
}

func (r *evidenceRepository) ListWithPagination(ctx context.Context, projectID string, limit, offset int) ([]*model.EvidenceEntry, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.entries[evidenceBucketKey{projectID: projectID}]

	all := make([]*model.EvidenceEntry, 0, len(bucket))
	for _, e := range bucket {
		all = append(all, copyEvidence(e))
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	totalCount := len(all)

	if offset >= len(all) {
		return []*model.EvidenceEntry{}, totalCount, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], totalCount, nil
}
