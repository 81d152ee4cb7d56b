package notify

import (
	"context"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
)

// Service defines the interface for analysis completion notifications
type Service interface {
	AnalysisCompleted(ctx context.Context, projectID string, run *model.AnalysisRun, deltas []model.DimensionDelta) error
}
