package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/rpad300/godmode-sub015/pkg/domain/interfaces"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/repository/memory"
	"github.com/rpad300/godmode-sub015/pkg/usecase"
)

// brokenExtractionRepo fails every cache operation
type brokenExtractionRepo struct{}

func (r *brokenExtractionRepo) Get(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID) (*model.ExtractionResult, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *brokenExtractionRepo) Upsert(ctx context.Context, projectID string, documentID types.DocumentID, personID types.PersonID, result *model.ExtractionResult) error {
	return goerr.New("storage unavailable")
}

// brokenCacheRepository is a repository whose extraction cache always fails
type brokenCacheRepository struct {
	interfaces.Repository
}

func (r *brokenCacheRepository) Extraction() interfaces.ExtractionRepository {
	return &brokenExtractionRepo{}
}

const sampleTranscript = "Maria: Welcome everyone to the meeting.\n" +
	"John: I agree, but let's check budget first.\n"

func TestExtract(t *testing.T) {
	const projectID = "test-project"
	const personID = types.PersonID("john-silva")

	t.Run("cache miss parses and stores the result", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		result := uc.Extraction.Extract(ctx, projectID, personID, "John Silva", nil, usecase.TranscriptInput{
			Filename: "standup.md",
			Content:  sampleTranscript,
		})

		gt.Value(t, result.InterventionCount).Equal(1)
		gt.Bool(t, result.ExtractedAt.IsZero()).False()
		gt.Value(t, string(result.DocumentID)).Equal("standup.md")

		cached, err := repo.Extraction().Get(ctx, projectID, "standup.md", personID)
		gt.NoError(t, err).Required()
		gt.Value(t, cached.InterventionCount).Equal(1)
	})

	t.Run("cache hit skips re-parsing", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		seeded := &model.ExtractionResult{
			PersonName:        "John Silva",
			DocumentID:        "standup.md",
			Filename:          "standup.md",
			InterventionCount: 99,
			ExtractedAt:       time.Now().UTC(),
		}
		gt.NoError(t, repo.Extraction().Upsert(ctx, projectID, "standup.md", personID, seeded)).Required()

		result := uc.Extraction.Extract(ctx, projectID, personID, "John Silva", nil, usecase.TranscriptInput{
			Filename: "standup.md",
			Content:  sampleTranscript,
		})

		// The seeded marker count proves the content was never parsed
		gt.Value(t, result.InterventionCount).Equal(99)
	})

	t.Run("broken cache degrades to a miss", func(t *testing.T) {
		repo := &brokenCacheRepository{Repository: memory.New()}
		uc := usecase.New(repo)
		ctx := context.Background()

		result := uc.Extraction.Extract(ctx, projectID, personID, "John Silva", nil, usecase.TranscriptInput{
			Filename: "standup.md",
			Content:  sampleTranscript,
		})

		gt.Value(t, result.InterventionCount).Equal(1)
		gt.Value(t, result.Interventions[0].Text).Equal("I agree, but let's check budget first.")
	})

	t.Run("explicit document ID wins over filename", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		result := uc.Extraction.Extract(ctx, projectID, personID, "John Silva", nil, usecase.TranscriptInput{
			ID:       "doc-001",
			Filename: "standup.md",
			Content:  sampleTranscript,
		})

		gt.Value(t, string(result.DocumentID)).Equal("doc-001")

		_, err := repo.Extraction().Get(ctx, projectID, "doc-001", personID)
		gt.NoError(t, err)
	})

	t.Run("ExtractAll keeps input order and never fails", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		results := uc.Extraction.ExtractAll(ctx, projectID, personID, "John Silva", nil, []usecase.TranscriptInput{
			{Filename: "a.md", Content: sampleTranscript},
			{Filename: "b.md", Content: "Maria: Nothing from John in this one.\n"},
		})

		gt.Array(t, results).Length(2).Required()
		gt.Value(t, results[0].Filename).Equal("a.md")
		gt.Value(t, results[0].InterventionCount).Equal(1)
		gt.Value(t, results[1].Filename).Equal("b.md")
		gt.Value(t, results[1].InterventionCount).Equal(0)
	})
}
