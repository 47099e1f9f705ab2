package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the use case layer
var (
	// Registration
	ErrSubmissionInFlight = goerr.New("another submission is already in progress")

	// Auth
	ErrInvalidCredentials = goerr.New("invalid email or password")
	ErrUserInactive       = goerr.New("user account is deactivated")
	ErrInvalidToken       = goerr.New("invalid or expired token")
	ErrPermissionDenied   = goerr.New("operation requires super admin role")

	// Seasons and fields
	ErrSeasonYearTaken    = goerr.New("a season for this year already exists")
	ErrSeasonArchived     = goerr.New("season is already archived")
	ErrDuplicateFieldName = goerr.New("field name already used in this season")

	// News
	ErrSlugTaken = goerr.New("slug already in use")

	// VK
	ErrVKNotConfigured = goerr.New("vk integration is not configured")

	// Captcha
	ErrCaptchaNotConfigured = goerr.New("captcha secret is not configured")

	// Media
	ErrMediaNotConfigured = goerr.New("media storage is not configured")
	ErrUnsupportedMedia   = goerr.New("unsupported media type")
	ErrUploadTooLarge     = goerr.New("upload too large")
)

// Context keys for error values
const (
	SeasonIDKey = "season_id"
	TeamIDKey   = "team_id"
	NewsIDKey   = "news_id"
	UserIDKey   = "user_id"
	EmailKey    = "email"
	SlugKey     = "slug"
)
