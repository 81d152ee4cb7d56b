package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/interfaces"
)

// Firestore is the Firestore-backed repository. Data is nested under
// projects/{projectID}/ collections.
type Firestore struct {
	client      *firestore.Client
	extraction  *extractionRepository
	evidence    *evidenceRepository
	profile     *profileRepository
	analysisRun *analysisRunRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes the root collection name, used to isolate
// test data.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.extraction.collectionPrefix = prefix
		f.evidence.collectionPrefix = prefix
		f.profile.collectionPrefix = prefix
		f.analysisRun.collectionPrefix = prefix
	}
}

func New(ctx context.Context, gcpProjectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, gcpProjectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("gcpProjectID", gcpProjectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:      client,
		extraction:  newExtractionRepository(client),
		evidence:    newEvidenceRepository(client),
		profile:     newProfileRepository(client),
		analysisRun: newAnalysisRunRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Extraction() interfaces.ExtractionRepository {
	return f.extraction
}

func (f *Firestore) Evidence() interfaces.EvidenceRepository {
	return f.evidence
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) AnalysisRun() interfaces.AnalysisRunRepository {
	return f.analysisRun
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
