package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

type analysisRunRepository struct {
	mu   sync.RWMutex
	runs map[evidenceBucketKey]map[model.AnalysisID]*model.AnalysisRun
}

func newAnalysisRunRepository() *analysisRunRepository {
	return &analysisRunRepository{
		runs: make(map[evidenceBucketKey]map[model.AnalysisID]*model.AnalysisRun),
	}
}

func copyAnalysisRun(run *model.AnalysisRun) *model.AnalysisRun {
	copied := *run
	return &copied
}

func (r *analysisRunRepository) Create(ctx context.Context, projectID string, run *model.AnalysisRun) (*model.AnalysisRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := evidenceBucketKey{projectID: projectID}
	if _, exists := r.runs[key]; !exists {
		r.runs[key] = make(map[model.AnalysisID]*model.AnalysisRun)
	}

	created := copyAnalysisRun(run)
	if created.ID == "" {
		created.ID = model.NewAnalysisID()
	}
	created.CreatedAt = time.Now().UTC()

	r.runs[key][created.ID] = created
	return copyAnalysisRun(created), nil
}

func (r *analysisRunRepository) ListByPersonID(ctx context.Context, projectID string, personID types.PersonID) ([]*model.AnalysisRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.runs[evidenceBucketKey{projectID: projectID}]
	if !exists {
		return []*model.AnalysisRun{}, nil
	}

	result := make([]*model.AnalysisRun, 0)
	for _, run := range bucket {
		if run.PersonID == personID {
			result = append(result, copyAnalysisRun(run))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
