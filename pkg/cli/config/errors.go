package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrDuplicateSlug    = goerr.New("duplicate category slug")
	ErrMissingName      = goerr.New("name is required")
	ErrInvalidTimezone  = goerr.New("invalid timezone")
	ErrMissingAuthKey   = goerr.New("auth secret is required to serve the admin API")
	ErrShortAuthKey     = goerr.New("auth secret must be at least 32 bytes")
	ErrInvalidSMTPPort  = goerr.New("invalid SMTP port")
	ErrIncompleteSMTP   = goerr.New("smtp host, from and admin-to are all required")
	ErrIncompleteNotify = goerr.New("slack token and channel are both required")
)

// Context keys for error values
const (
	ConfigPathKey    = "config_path"
	CategoryIndexKey = "category_index"
	CategorySlugKey  = "category_slug"
)
