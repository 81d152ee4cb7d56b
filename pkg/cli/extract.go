package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/cli/config"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExtract() *cli.Command {
	var personID string
	var personName string
	var aliases []string
	var projectID string
	var showText bool
	var appCfg config.AppConfig
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "person-id",
			Aliases:     []string{"p"},
			Usage:       "ID of the person to extract interventions for",
			Required:    true,
			Sources:     cli.EnvVars("GODMODE_PERSON_ID"),
			Destination: &personID,
		},
		&cli.StringFlag{
			Name:        "person-name",
			Usage:       "Display name of the person (overrides the configuration)",
			Destination: &personName,
		},
		&cli.StringSliceFlag{
			Name:        "alias",
			Usage:       "Additional name the person appears under (can be specified multiple times)",
			Destination: &aliases,
		},
		&cli.StringFlag{
			Name:        "project-id",
			Usage:       "Project scope for the extraction cache",
			Value:       "default",
			Sources:     cli.EnvVars("GODMODE_PROJECT_ID"),
			Destination: &projectID,
		},
		&cli.BoolFlag{
			Name:        "show-text",
			Usage:       "Print the full text of each intervention",
			Destination: &showText,
		},
	}

	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Extract one person's speaking turns from transcript files",
		ArgsUsage: "<transcript files...>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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

			name := personName
			if person := profileCfg.Person(pid); person != nil {
				if name == "" {
					name = person.Name
				}
				aliases = append(aliases, person.Aliases...)
			}
			if name == "" {
				return goerr.New("person is not in the configuration, --person-name is required", goerr.V("personID", pid))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer repo.Close() //nolint:errcheck

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

			uc := usecase.New(repo)
			results := uc.Extraction.ExtractAll(ctx, projectID, pid, name, aliases, inputs)

			header := color.New(color.FgCyan, color.Bold)
			meta := color.New(color.FgYellow)
			dim := color.New(color.Faint)

			totalInterventions := 0
			totalWords := 0
			for _, res := range results {
				header.Printf("%s\n", res.Filename)
				meta.Printf("  %d interventions, %d words\n", res.InterventionCount, res.TotalWordCount)

				if showText {
					for _, iv := range res.Interventions {
						if iv.Timestamp != "" {
							dim.Printf("  [%s] ", iv.Timestamp)
						} else {
							dim.Printf("  [line %d] ", iv.LineNumber+1)
						}
						fmt.Println(iv.Text)
					}
				}

				totalInterventions += res.InterventionCount
				totalWords += res.TotalWordCount
			}

			header.Printf("total: %d interventions, %d words across %d files\n",
				totalInterventions, totalWords, len(results))

			return nil
		},
	}
}
