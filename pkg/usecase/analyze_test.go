package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/repository/memory"
	"github.com/rpad300/godmode-sub015/pkg/service/analysis"
	"github.com/rpad300/godmode-sub015/pkg/usecase"
)

// mockAnalysisService captures the input and returns a canned result
type mockAnalysisService struct {
	lastInput *analysis.Input
	result    *analysis.Result
	err       error
}

func (m *mockAnalysisService) Analyze(ctx context.Context, input analysis.Input) (*analysis.Result, error) {
	m.lastInput = &input
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &analysis.Result{Confidence: "low"}, nil
}

type recordedNotification struct {
	projectID string
	run       *model.AnalysisRun
	deltas    []model.DimensionDelta
}

type mockNotifyService struct {
	notified []recordedNotification
}

func (m *mockNotifyService) AnalysisCompleted(ctx context.Context, projectID string, run *model.AnalysisRun, deltas []model.DimensionDelta) error {
	m.notified = append(m.notified, recordedNotification{projectID: projectID, run: run, deltas: deltas})
	return nil
}

func defaultAnalyzeOption() usecase.AnalyzeOption {
	return usecase.AnalyzeOption{
		ProjectID:  "test-project",
		PersonID:   "john-silva",
		PersonName: "John Silva",
		Transcripts: []usecase.TranscriptInput{
			{Filename: "standup.md", Content: sampleTranscript},
		},
		Dimensions: []analysis.Dimension{
			{ID: "communication-style", Name: "Communication Style"},
			{ID: "decision-making", Name: "Decision Making"},
		},
	}
}

func TestAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("fails without a configured analysis service", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.Error(t, err)
	})

	t.Run("rejects an invalid person ID", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithAnalysisService(&mockAnalysisService{}))

		opts := defaultAnalyzeOption()
		opts.PersonID = "John Silva"
		_, err := uc.Analysis.Analyze(ctx, opts)
		gt.Error(t, err)
	})

	t.Run("creates a profile on the first pass", func(t *testing.T) {
		repo := memory.New()
		svc := &mockAnalysisService{result: &analysis.Result{
			Deltas: []model.DimensionDelta{
				{Dimension: "communication-style", Status: types.DimensionNewDiscovered, Narrative: "Direct and to the point."},
			},
			Confidence: "medium",
		}}
		uc := usecase.New(repo, usecase.WithAnalysisService(svc))

		result, err := uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.NoError(t, err).Required()

		gt.Value(t, result.Profile.PersonName).Equal("John Silva")
		gt.Value(t, result.Profile.Dimensions["communication-style"]).Equal("Direct and to the point.")
		gt.Value(t, result.Profile.ConfidenceLevel).Equal(types.ConfidenceMedium)

		stored, err := repo.Profile().Get(ctx, "test-project", "john-silva")
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Dimensions["communication-style"]).Equal("Direct and to the point.")
	})

	t.Run("only refined and new dimensions replace narratives", func(t *testing.T) {
		repo := memory.New()

		prior := model.NewProfile("john-silva", "John Silva")
		prior.Dimensions["communication-style"] = "Original narrative."
		prior.Dimensions["decision-making"] = "Cautious."
		gt.NoError(t, repo.Profile().Upsert(ctx, "test-project", prior)).Required()

		svc := &mockAnalysisService{result: &analysis.Result{
			Deltas: []model.DimensionDelta{
				{Dimension: "communication-style", Status: types.DimensionConfirmed, Narrative: "Should be ignored."},
				{Dimension: "decision-making", Status: types.DimensionRefined, Narrative: "Cautious but decisive under deadlines."},
			},
			Confidence: "high",
		}}
		uc := usecase.New(repo, usecase.WithAnalysisService(svc))

		result, err := uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.NoError(t, err).Required()

		gt.Value(t, result.Profile.Dimensions["communication-style"]).Equal("Original narrative.")
		gt.Value(t, result.Profile.Dimensions["decision-making"]).Equal("Cautious but decisive under deadlines.")
		gt.Value(t, result.Profile.ConfidenceLevel).Equal(types.ConfidenceHigh)
	})

	t.Run("invalid confidence keeps the prior level", func(t *testing.T) {
		repo := memory.New()
		svc := &mockAnalysisService{result: &analysis.Result{Confidence: "absolute"}}
		uc := usecase.New(repo, usecase.WithAnalysisService(svc))

		result, err := uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.NoError(t, err).Required()
		gt.Value(t, result.Profile.ConfidenceLevel).Equal(types.ConfidenceLow)
	})

	t.Run("evidence is persisted with ownership stamped", func(t *testing.T) {
		repo := memory.New()
		svc := &mockAnalysisService{result: &analysis.Result{
			Evidence: []*model.EvidenceEntry{
				{
					Quote:            "let's check budget first",
					SourceDocumentID: "standup.md",
					EvidenceType:     types.EvidencePressureResponse,
					Confidence:       types.ConfidenceHigh,
				},
			},
			Confidence: "low",
		}}
		uc := usecase.New(repo, usecase.WithAnalysisService(svc))

		result, err := uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.NoError(t, err).Required()

		gt.Array(t, result.Evidence).Length(1).Required()
		entry := result.Evidence[0]
		gt.String(t, string(entry.ID)).NotEqual("")
		gt.Value(t, entry.PersonID).Equal(types.PersonID("john-silva"))
		gt.Value(t, entry.AnalysisID).Equal(result.Run.ID)
		gt.Value(t, result.Run.EvidenceCreated).Equal(1)

		bank, err := repo.Evidence().ListByPersonID(ctx, "test-project", "john-silva")
		gt.NoError(t, err).Required()
		gt.Array(t, bank).Length(1)
	})

	t.Run("run is recorded with extraction counts", func(t *testing.T) {
		repo := memory.New()
		svc := &mockAnalysisService{}
		uc := usecase.New(repo, usecase.WithAnalysisService(svc))

		result, err := uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.NoError(t, err).Required()

		gt.Value(t, result.Run.DocumentCount).Equal(1)
		gt.Value(t, result.Run.InterventionsTotal).Equal(1)
		gt.Value(t, result.Run.InterventionsUsed).Equal(1)
		gt.Bool(t, result.Run.EstimatedTokens > 0).True()
		gt.Bool(t, result.Run.FinishedAt.Before(result.Run.StartedAt)).False()

		runs, err := uc.Analysis.ListRuns(ctx, "test-project", "john-silva")
		gt.NoError(t, err).Required()
		gt.Array(t, runs).Length(1).Required()
		gt.Value(t, runs[0].ID).Equal(result.Run.ID)
	})

	t.Run("prior evidence bank is handed to the analysis service", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Evidence().Create(ctx, "test-project", &model.EvidenceEntry{
			PersonID:     "john-silva",
			Quote:        "earlier quote",
			EvidenceType: types.EvidenceCommunicationStyle,
			Confidence:   types.ConfidenceLow,
		})
		gt.NoError(t, err).Required()

		svc := &mockAnalysisService{}
		uc := usecase.New(repo, usecase.WithAnalysisService(svc))

		_, err = uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.NoError(t, err).Required()

		gt.Value(t, svc.lastInput).NotNil().Required()
		gt.Array(t, svc.lastInput.Evidence).Length(1)
		gt.Value(t, svc.lastInput.PersonName).Equal("John Silva")
		gt.Array(t, svc.lastInput.Excerpts).Length(1)
		gt.Array(t, svc.lastInput.Dimensions).Length(2)
	})

	t.Run("completion notification carries the run and deltas", func(t *testing.T) {
		repo := memory.New()
		deltas := []model.DimensionDelta{
			{Dimension: "decision-making", Status: types.DimensionRefined, Narrative: "Updated."},
		}
		svc := &mockAnalysisService{result: &analysis.Result{Deltas: deltas, Confidence: "low"}}
		notifier := &mockNotifyService{}
		uc := usecase.New(repo, usecase.WithAnalysisService(svc), usecase.WithNotifyService(notifier))

		result, err := uc.Analysis.Analyze(ctx, defaultAnalyzeOption())
		gt.NoError(t, err).Required()

		gt.Array(t, notifier.notified).Length(1).Required()
		sent := notifier.notified[0]
		gt.Value(t, sent.projectID).Equal("test-project")
		gt.Value(t, sent.run.ID).Equal(result.Run.ID)
		gt.Array(t, sent.deltas).Length(1)
	})
}
