package firestore

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// evidenceDoc is the Firestore document representation of model.EvidenceEntry
type evidenceDoc struct {
	ID                    model.EvidenceID   `firestore:"ID"`
	PersonID              types.PersonID     `firestore:"PersonID"`
	AnalysisID            model.AnalysisID   `firestore:"AnalysisID"`
	Quote                 string             `firestore:"Quote"`
	Context               string             `firestore:"Context"`
	SourceDocumentID      types.DocumentID   `firestore:"SourceDocumentID"`
	TimestampInTranscript string             `firestore:"TimestampInTranscript"`
	EvidenceType          types.EvidenceType `firestore:"EvidenceType"`
	SupportsTrait         string             `firestore:"SupportsTrait"`
	Confidence            types.Confidence   `firestore:"Confidence"`
	IsPrimary             bool               `firestore:"IsPrimary"`
	CreatedAt             time.Time          `firestore:"CreatedAt"`
}

func toEvidenceDoc(e *model.EvidenceEntry) *evidenceDoc {
	return &evidenceDoc{
		ID:                    e.ID,
		PersonID:              e.PersonID,
		AnalysisID:            e.AnalysisID,
		Quote:                 e.Quote,
		Context:               e.Context,
		SourceDocumentID:      e.SourceDocumentID,
		TimestampInTranscript: e.TimestampInTranscript,
		EvidenceType:          e.EvidenceType,
		SupportsTrait:         e.SupportsTrait,
		Confidence:            e.Confidence,
		IsPrimary:             e.IsPrimary,
		CreatedAt:             e.CreatedAt,
	}
}

func fromEvidenceDoc(d *evidenceDoc) *model.EvidenceEntry {
	return &model.EvidenceEntry{
		ID:                    d.ID,
		PersonID:              d.PersonID,
		AnalysisID:            d.AnalysisID,
		Quote:                 d.Quote,
		Context:               d.Context,
		SourceDocumentID:      d.SourceDocumentID,
		TimestampInTranscript: d.TimestampInTranscript,
		EvidenceType:          d.EvidenceType,
		SupportsTrait:         d.SupportsTrait,
		Confidence:            d.Confidence,
		IsPrimary:             d.IsPrimary,
		CreatedAt:             d.CreatedAt,
	}
}

func docToEvidence(doc *firestore.DocumentSnapshot) (*model.EvidenceEntry, error) {
	var d evidenceDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromEvidenceDoc(&d), nil
}

type evidenceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEvidenceRepository(client *firestore.Client) *evidenceRepository {
	return &evidenceRepository{
		client: client,
	}
}

func (r *evidenceRepository) evidenceCollection(projectID string) *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "projects").Doc(projectID).Collection("evidence")
}

func (r *evidenceRepository) Create(ctx context.Context, projectID string, entry *model.EvidenceEntry) (*model.EvidenceEntry, error) {
	if entry.ID == "" {
		entry.ID = model.NewEvidenceID()
	}
	entry.CreatedAt = time.Now().UTC()

	docRef := r.evidenceCollection(projectID).Doc(string(entry.ID))
	if _, err := docRef.Set(ctx, toEvidenceDoc(entry)); err != nil {
		return nil, goerr.Wrap(err, "failed to create evidence", goerr.V("id", entry.ID))
	}

	return entry, nil
}

func (r *evidenceRepository) Get(ctx context.Context, projectID string, id model.EvidenceID) (*model.EvidenceEntry, error) {
	docRef := r.evidenceCollection(projectID).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get evidence", goerr.V("id", id))
	}

	entry, err := docToEvidence(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal evidence", goerr.V("id", id))
	}

	return entry, nil
}

func (r *evidenceRepository) ListByPersonID(ctx context.Context, projectID string, personID types.PersonID) ([]*model.EvidenceEntry, error) {
	iter := r.evidenceCollection(projectID).
		Where("PersonID", "==", string(personID)).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.EvidenceEntry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate evidence", goerr.V("personID", personID))
		}

		entry, err := docToEvidence(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal evidence")
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *evidenceRepository) ListByPersonIDs(ctx context.Context, projectID string, personIDs []types.PersonID) (map[types.PersonID][]*model.EvidenceEntry, error) {
	if len(personIDs) == 0 {
		return make(map[types.PersonID][]*model.EvidenceEntry), nil
	}

	var mu sync.Mutex
	result := make(map[types.PersonID][]*model.EvidenceEntry, len(personIDs))

	eg, ctx := errgroup.WithContext(ctx)
	for _, personID := range personIDs {
		eg.Go(func() error {
			entries, err := r.ListByPersonID(ctx, projectID, personID)
			if err != nil {
				return goerr.Wrap(err, "failed to list evidence for person", goerr.V("personID", personID))
			}
			mu.Lock()
			result[personID] = entries
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *evidenceRepository) ListWithPagination(ctx context.Context, projectID string, limit, offset int) ([]*model.EvidenceEntry, int, error) {
	allDocs, err := r.evidenceCollection(projectID).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to count evidence")
	}
	totalCount := len(allDocs)

	query := r.evidenceCollection(projectID).
		OrderBy("CreatedAt", firestore.Desc).
		Offset(offset).
		Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.EvidenceEntry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to iterate evidence")
		}

		entry, err := docToEvidence(doc)
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to unmarshal evidence")
		}

		entries = append(entries, entry)
	}

	return entries, totalCount, nil
}
