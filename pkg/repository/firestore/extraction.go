package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// interventionDoc is the Firestore representation of model.Intervention
type interventionDoc struct {
	Timestamp  string `firestore:"Timestamp"`
	Speaker    string `firestore:"Speaker"`
	Text       string `firestore:"Text"`
	Context    string `firestore:"Context"`
	WordCount  int    `firestore:"WordCount"`
	LineNumber int    `firestore:"LineNumber"`
}

// extractionDoc is the Firestore document representation of
// model.ExtractionResult. One document exists per (document, person) key.
type extractionDoc struct {
	PersonName        string            `firestore:"PersonName"`
	PersonID          types.PersonID    `firestore:"PersonID"`
	DocumentID        types.DocumentID  `firestore:"DocumentID"`
	Filename          string            `firestore:"Filename"`
	Interventions     []interventionDoc `firestore:"Interventions"`
	TotalWordCount    int               `firestore:"TotalWordCount"`
	InterventionCount int               `firestore:"InterventionCount"`
	ExtractedAt       time.Time         `firestore:"ExtractedAt"`
	UpdatedAt         time.Time         `firestore:"UpdatedAt"`
}

func toExtractionDoc(personID types.PersonID, r *model.ExtractionResult) *extractionDoc {
	doc := &extractionDoc{
		PersonName:        r.PersonName,
		PersonID:          personID,
		DocumentID:        r.DocumentID,
		Filename:          r.Filename,
		TotalWordCount:    r.TotalWordCount,
		InterventionCount: r.InterventionCount,
		ExtractedAt:       r.ExtractedAt,
	}
	for _, iv := range r.Interventions {
		doc.Interventions = append(doc.Interventions, interventionDoc(iv))
	}
	return doc
}

func fromExtractionDoc(d *extractionDoc) *model.ExtractionResult {
	r := &model.ExtractionResult{
		PersonName:        d.PersonName,
		DocumentID:        d.DocumentID,
		Filename:          d.Filename,
		TotalWordCount:    d.TotalWordCount,
		InterventionCount: d.InterventionCount,
		ExtractedAt:       d.ExtractedAt,
	}
	for _, iv := range d.Interventions {
		r.Interventions = append(r.Interventions, model.Intervention(iv))
	}
	return r
}

type extractionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newExtractionRepository(client *firestore.Client) *extractionRepository {
	return &extractionRepository{
		client: client,
	}
}

func (r *extractionRepository) extractionsCollection(projectID string) *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "projects").Doc(projectID).Collection("extractions")
}

// extractionDocID composes the unique document ID for the cache key
func extractionDocID(documentID types.DocumentID, personID types.PersonID) string {
	return fmt.Sprintf("%s_%s", documentID, personID)
}

func (r *extractionRepository) Get(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID) (*model.ExtractionResult, error) {
	docRef := r.extractionsCollection(projectID).Doc(extractionDocID(documentID, personID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "extraction not found",
				goerr.V("documentID", documentID), goerr.V("personID", personID))
		}
		return nil, goerr.Wrap(err, "failed to get extraction",
			goerr.V("documentID", documentID), goerr.V("personID", personID))
	}

	var d extractionDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal extraction",
			goerr.V("documentID", documentID), goerr.V("personID", personID))
	}

	return fromExtractionDoc(&d), nil
}

func (r *extractionRepository) Upsert(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID, result *model.ExtractionResult) error {
	doc := toExtractionDoc(personID, result)
	doc.UpdatedAt = time.Now().UTC()

	docRef := r.extractionsCollection(projectID).Doc(extractionDocID(documentID, personID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to upsert extraction",
			goerr.V("documentID", documentID), goerr.V("personID", personID))
	}

	return nil
}
