package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/cli/config"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/service/analysis"
	"github.com/rpad300/godmode-sub015/pkg/usecase"
	"github.com/rpad300/godmode-sub015/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var personID string
	var projectID string
	var maxTokens int
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "person-id",
			Aliases:     []string{"p"},
			Usage:       "ID of the person to analyze",
			Required:    true,
			Sources:     cli.EnvVars("GODMODE_PERSON_ID"),
			Destination: &personID,
		},
		&cli.StringFlag{
			Name:        "project-id",
			Usage:       "Project scope for profiles, evidence, and the extraction cache",
			Value:       "default",
			Sources:     cli.EnvVars("GODMODE_PROJECT_ID"),
			Destination: &projectID,
		},
		&cli.IntFlag{
			Name:        "max-tokens",
			Usage:       "Token budget for the analysis prompt",
			Value:       0,
			Sources:     cli.EnvVars("GODMODE_MAX_TOKENS"),
			Destination: &maxTokens,
		},
	}

	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Run one incremental analysis pass over transcript files",
		ArgsUsage: "<transcript files...>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			paths := c.Args().Slice()
			if len(paths) == 0 {
				return goerr.New("at least one transcript file is required")
			}

			profileCfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load profile configuration")
			}

			pid := types.PersonID(personID)
			if err := pid.Validate(); err != nil {
				return err
			}

			person := profileCfg.Person(pid)
			if person == nil {
				return goerr.New("person is not in the configuration", goerr.V("personID", pid))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient == nil {
				return goerr.New("gemini-project is required for analysis")
			}

			analysisSvc, err := analysis.New(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize analysis service")
			}

			ucOpts := []usecase.Option{
				usecase.WithAnalysisService(analysisSvc),
			}

			notifySvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack notifications")
			}
			if notifySvc != nil {
				ucOpts = append(ucOpts, usecase.WithNotifyService(notifySvc))
			}

			uc := usecase.New(repo, ucOpts...)

			inputs := make([]usecase.TranscriptInput, 0, len(paths))
			for _, path := range paths {
				// #nosec G304 - paths come from CLI arguments
				content, err := os.ReadFile(path)
				if err != nil {
					return goerr.Wrap(err, "failed to read transcript", goerr.V("path", path))
				}
				inputs = append(inputs, usecase.TranscriptInput{
					Filename: filepath.Base(path),
					Content:  string(content),
				})
			}

			dimensions := make([]analysis.Dimension, 0, len(profileCfg.Dimensions))
			for _, d := range profileCfg.Dimensions {
				dimensions = append(dimensions, analysis.Dimension{
					ID:          d.ID,
					Name:        d.Name,
					Description: d.Description,
				})
			}

			result, err := uc.Analysis.Analyze(ctx, usecase.AnalyzeOption{
				ProjectID:   projectID,
				PersonID:    pid,
				PersonName:  person.Name,
				Aliases:     person.Aliases,
				Transcripts: inputs,
				Dimensions:  dimensions,
				Prompt:      profileCfg.Prompt,
				MaxTokens:   maxTokens,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to run analysis")
			}

			logger.Info("Analysis completed",
				"analysisID", result.Run.ID,
				"documents", result.Run.DocumentCount,
				"interventionsTotal", result.Run.InterventionsTotal,
				"interventionsUsed", result.Run.InterventionsUsed,
				"estimatedTokens", result.Run.EstimatedTokens,
				"evidenceCreated", result.Run.EvidenceCreated,
				"contradictions", result.Run.Contradictions,
			)

			for _, d := range result.Deltas {
				logger.Info("Dimension delta",
					"dimension", d.Dimension,
					"status", d.Status,
				)
			}

			return nil
		},
	}
}
