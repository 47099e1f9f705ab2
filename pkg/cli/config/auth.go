package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for admin API authentication
type Auth struct {
	secret string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-secret",
			Usage:       "Secret key for signing admin API tokens (at least 32 bytes)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("ROBOFEST_AUTH_SECRET"),
			Destination: &x.secret,
		},
	}
}

// IsConfigured reports whether a secret was provided
func (x *Auth) IsConfigured() bool {
	return x.secret != ""
}

// Secret validates and returns the signing key
func (x *Auth) Secret() ([]byte, error) {
	if x.secret == "" {
		return nil, ErrMissingAuthKey
	}
	if len(x.secret) < 32 {
		return nil, goerr.Wrap(ErrShortAuthKey, "auth secret too short", goerr.V("length", len(x.secret)))
	}
	return []byte(x.secret), nil
}
