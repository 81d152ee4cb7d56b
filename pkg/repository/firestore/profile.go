package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// profileDoc is the Firestore document representation of model.Profile
type profileDoc struct {
	PersonID        types.PersonID    `firestore:"PersonID"`
	PersonName      string            `firestore:"PersonName"`
	ConfidenceLevel types.Confidence  `firestore:"ConfidenceLevel"`
	Dimensions      map[string]string `firestore:"Dimensions"`
	CreatedAt       time.Time         `firestore:"CreatedAt"`
	UpdatedAt       time.Time         `firestore:"UpdatedAt"`
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{
		client: client,
	}
}

func (r *profileRepository) profilesCollection(projectID string) *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "projects").Doc(projectID).Collection("profiles")
}

func (r *profileRepository) Get(ctx context.Context, projectID string, personID types.PersonID) (*model.Profile, error) {
	docRef := r.profilesCollection(projectID).Doc(string(personID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("personID", personID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("personID", personID))
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("personID", personID))
	}

	profile := &model.Profile{
		PersonID:        d.PersonID,
		PersonName:      d.PersonName,
		ConfidenceLevel: d.ConfidenceLevel,
		Dimensions:      d.Dimensions,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if profile.Dimensions == nil {
		profile.Dimensions = map[string]string{}
	}

	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, projectID string, profile *model.Profile) error {
	now := time.Now().UTC()

	doc := &profileDoc{
		PersonID:        profile.PersonID,
		PersonName:      profile.PersonName,
		ConfidenceLevel: profile.ConfidenceLevel,
		Dimensions:      profile.Dimensions,
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       now,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}

	docRef := r.profilesCollection(projectID).Doc(string(profile.PersonID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to upsert profile", goerr.V("personID", profile.PersonID))
	}

	return nil
}
