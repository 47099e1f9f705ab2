package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/robofest-ru/robofest/pkg/service/notify"
)

// Slack holds CLI flags for Slack back-office notifications
type Slack struct {
	botToken string
	channel  string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token. Empty disables Slack notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("ROBOFEST_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for registration and contact notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("ROBOFEST_SLACK_CHANNEL"),
			Destination: &x.channel,
		},
	}
}

// IsConfigured reports whether both token and channel were provided
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channel != ""
}

// Configure builds the notification service, or nil when disabled.
// Setting only one of the two flags is a configuration error.
func (x *Slack) Configure() (*notify.Service, error) {
	if x.botToken == "" && x.channel == "" {
		return nil, nil
	}
	if x.botToken == "" || x.channel == "" {
		return nil, goerr.Wrap(ErrIncompleteNotify, "both slack-bot-token and slack-channel are needed")
	}
	return notify.New(x.botToken, x.channel)
}
