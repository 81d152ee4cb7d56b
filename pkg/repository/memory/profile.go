package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

type profileKey struct {
	projectID string
	personID  types.PersonID
}

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[profileKey]*model.Profile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[profileKey]*model.Profile),
	}
}

func copyProfile(p *model.Profile) *model.Profile {
	copied := *p
	copied.Dimensions = make(map[string]string, len(p.Dimensions))
	for k, v := range p.Dimensions {
		copied.Dimensions[k] = v
	}
	return &copied
}

func (r *profileRepository) Get(ctx context.Context, projectID string, personID types.PersonID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := profileKey{projectID: projectID, personID: personID}
	profile, exists := r.profiles[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("personID", personID))
	}

	return copyProfile(profile), nil
}

func (r *profileRepository) Upsert(ctx context.Context, projectID string, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := profileKey{projectID: projectID, personID: profile.PersonID}

	stored := copyProfile(profile)
	now := time.Now().UTC()
	if prev, exists := r.profiles[key]; exists {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.profiles[key] = stored
	return nil
}
