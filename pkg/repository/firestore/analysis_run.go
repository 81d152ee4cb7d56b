package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// analysisRunDoc is the Firestore document representation of model.AnalysisRun
type analysisRunDoc struct {
	ID                 model.AnalysisID `firestore:"ID"`
	PersonID           types.PersonID   `firestore:"PersonID"`
	DocumentCount      int              `firestore:"DocumentCount"`
	InterventionsTotal int              `firestore:"InterventionsTotal"`
	InterventionsUsed  int              `firestore:"InterventionsUsed"`
	EstimatedTokens    int              `firestore:"EstimatedTokens"`
	EvidenceCreated    int              `firestore:"EvidenceCreated"`
	Contradictions     int              `firestore:"Contradictions"`
	StartedAt          time.Time        `firestore:"StartedAt"`
	FinishedAt         time.Time        `firestore:"FinishedAt"`
	CreatedAt          time.Time        `firestore:"CreatedAt"`
}

type analysisRunRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAnalysisRunRepository(client *firestore.Client) *analysisRunRepository {
	return &analysisRunRepository{
		client: client,
	}
}

func (r *analysisRunRepository) analysesCollection(projectID string) *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "projects").Doc(projectID).Collection("analyses")
}

func (r *analysisRunRepository) Create(ctx context.Context, projectID string, run *model.AnalysisRun) (*model.AnalysisRun, error) {
	if run.ID == "" {
		run.ID = model.NewAnalysisID()
	}
	run.CreatedAt = time.Now().UTC()

	doc := analysisRunDoc(*run)
	docRef := r.analysesCollection(projectID).Doc(string(run.ID))
	if _, err := docRef.Set(ctx, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create analysis run", goerr.V("id", run.ID))
	}

	return run, nil
}

func (r *analysisRunRepository) ListByPersonID(ctx context.Context, projectID string, personID types.PersonID) ([]*model.AnalysisRun, error) {
	iter := r.analysesCollection(projectID).
		Where("PersonID", "==", string(personID)).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	runs := make([]*model.AnalysisRun, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate analysis runs", goerr.V("personID", personID))
		}

		var d analysisRunDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal analysis run")
		}

		run := model.AnalysisRun(d)
		runs = append(runs, &run)
	}

	return runs, nil
}
