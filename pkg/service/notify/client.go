package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api       *slack.Client
	channelID string
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new Slack notification service with the provided bot token
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		api:       slack.New(token),
		channelID: channelID,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AnalysisCompleted posts a summary of a finished analysis run to Slack
func (c *client) AnalysisCompleted(ctx context.Context, projectID string, run *model.AnalysisRun, deltas []model.DimensionDelta) error {
	blocks := buildAnalysisBlocks(projectID, run, deltas)

	fallback := fmt.Sprintf("Analysis completed for %s: %d evidence entries from %d interventions",
		run.PersonID, run.EvidenceCreated, run.InterventionsUsed)

	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fallback, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post analysis notification",
			goerr.V("channelID", c.channelID),
			goerr.V("analysisID", run.ID),
		)
	}

	return nil
}

func buildAnalysisBlocks(projectID string, run *model.AnalysisRun, deltas []model.DimensionDelta) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "Profile analysis completed", true, false),
		),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Project:*\n%s", projectID), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Person:*\n%s", run.PersonID), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Documents:*\n%d", run.DocumentCount), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Interventions:*\n%d of %d used", run.InterventionsUsed, run.InterventionsTotal), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Evidence created:*\n%d", run.EvidenceCreated), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Contradictions:*\n%d", run.Contradictions), false, false),
		}, nil),
	}

	if changed := changedDimensions(deltas); len(changed) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Updated dimensions:* "+strings.Join(changed, ", "), false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Run `%s` took %s", run.ID, run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)), false, false),
	))

	return blocks
}

func changedDimensions(deltas []model.DimensionDelta) []string {
	var changed []string
	for _, d := range deltas {
		if d.Status.ChangesProfile() {
			changed = append(changed, d.Dimension)
		}
	}
	return changed
}
