package interfaces

import (
	"context"

	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

// ProfileRepository persists behavioral profile snapshots, one per person
type ProfileRepository interface {
	// Get retrieves the profile for a person, or ErrNotFound
	Get(ctx context.Context, projectID string, personID types.PersonID) (*model.Profile, error)

	// Upsert stores the profile, replacing any existing snapshot for the person
	Upsert(ctx context.Context, projectID string, profile *model.Profile) error
}
