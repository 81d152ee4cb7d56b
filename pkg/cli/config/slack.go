package config

import (
	"github.com/rpad300/godmode-sub015/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration for Slack notifications
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for analysis notifications",
			Sources:     cli.EnvVars("GODMODE_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID to post notifications to",
			Sources:     cli.EnvVars("GODMODE_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// IsConfigured returns true when both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.botToken != "" && s.channelID != ""
}

// Configure creates a notification service from the configured flags.
// Returns nil if Slack is not configured (notifications will be disabled).
func (s *Slack) Configure() (notify.Service, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	return notify.New(s.botToken, s.channelID)
}
