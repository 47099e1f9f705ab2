package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/robofest-ru/robofest/pkg/service/mailer"
)

// SMTP holds CLI flags for outgoing mail configuration
type SMTP struct {
	host     string
	port     int64
	username string
	password string
	from     string
	adminTo  string
}

func (x *SMTP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP server host. Empty disables mail notifications",
			Category:    "Mail",
			Sources:     cli.EnvVars("ROBOFEST_SMTP_HOST"),
			Destination: &x.host,
		},
		&cli.Int64Flag{
			Name:        "smtp-port",
			Usage:       "SMTP server port",
			Category:    "Mail",
			Value:       587,
			Sources:     cli.EnvVars("ROBOFEST_SMTP_PORT"),
			Destination: &x.port,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP username",
			Category:    "Mail",
			Sources:     cli.EnvVars("ROBOFEST_SMTP_USERNAME"),
			Destination: &x.username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP password",
			Category:    "Mail",
			Sources:     cli.EnvVars("ROBOFEST_SMTP_PASSWORD"),
			Destination: &x.password,
		},
		&cli.StringFlag{
			Name:        "smtp-from",
			Usage:       "Sender address for outgoing mail",
			Category:    "Mail",
			Sources:     cli.EnvVars("ROBOFEST_SMTP_FROM"),
			Destination: &x.from,
		},
		&cli.StringFlag{
			Name:        "smtp-admin-to",
			Usage:       "Recipient address for back-office notifications",
			Category:    "Mail",
			Sources:     cli.EnvVars("ROBOFEST_SMTP_ADMIN_TO"),
			Destination: &x.adminTo,
		},
	}
}

// IsConfigured reports whether mail notifications should be enabled
func (x *SMTP) IsConfigured() bool {
	return x.host != ""
}

// Configure validates the flags and builds the mailer, or nil when
// mail is disabled.
func (x *SMTP) Configure() (*mailer.Mailer, error) {
	if x.host == "" {
		return nil, nil
	}
	if x.port < 1 || x.port > 65535 {
		return nil, goerr.Wrap(ErrInvalidSMTPPort, "port out of range", goerr.V("port", x.port))
	}
	if x.from == "" || x.adminTo == "" {
		return nil, goerr.Wrap(ErrIncompleteSMTP, "missing mail addresses")
	}

	return mailer.New(mailer.Config{
		Host:     x.host,
		Port:     int(x.port),
		Username: x.username,
		Password: x.password,
		From:     x.from,
		AdminTo:  x.adminTo,
	}), nil
}
