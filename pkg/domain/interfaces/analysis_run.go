package interfaces

import (
	"context"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// AnalysisRunRepository persists records of incremental analysis runs
type AnalysisRunRepository interface {
	// Create stores a new analysis run record
	Create(ctx context.Context, projectID string, run *model.AnalysisRun) (*model.AnalysisRun, error)

	// ListByPersonID retrieves analysis runs for a person, newest first
	ListByPersonID(ctx context.Context, projectID string, personID types.PersonID) ([]*model.AnalysisRun, error)
}
