package config

import (
	"github.com/urfave/cli/v3"

	"github.com/robofest-ru/robofest/pkg/service/captcha"
)

// Captcha holds CLI flags for the registration captcha gate
type Captcha struct {
	secret   string
	endpoint string
}

func (x *Captcha) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "captcha-secret",
			Usage:       "Captcha verification secret. Empty disables the captcha gate",
			Category:    "Captcha",
			Sources:     cli.EnvVars("ROBOFEST_CAPTCHA_SECRET"),
			Destination: &x.secret,
		},
		&cli.StringFlag{
			Name:        "captcha-endpoint",
			Usage:       "Override the captcha verification endpoint (mainly for testing)",
			Category:    "Captcha",
			Sources:     cli.EnvVars("ROBOFEST_CAPTCHA_ENDPOINT"),
			Destination: &x.endpoint,
		},
	}
}

// IsConfigured reports whether the captcha gate should be enabled
func (x *Captcha) IsConfigured() bool {
	return x.secret != ""
}

// Configure builds the captcha verifier, or nil when disabled
func (x *Captcha) Configure() *captcha.Verifier {
	if x.secret == "" {
		return nil
	}
	var opts []captcha.Option
	if x.endpoint != "" {
		opts = append(opts, captcha.WithEndpoint(x.endpoint))
	}
	return captcha.New(x.secret, opts...)
}
