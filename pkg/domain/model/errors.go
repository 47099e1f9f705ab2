package model

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by repositories when a record does not exist
var ErrNotFound = goerr.New("record not found")

// Validation errors
var (
	ErrInvalidFieldName     = goerr.New("invalid field name")
	ErrInvalidFieldType     = goerr.New("invalid field type")
	ErrSelectWithoutOptions = goerr.New("select field has no options")

	ErrValidation         = goerr.New("form validation failed")
	ErrRegistrationClosed = goerr.New("registration is closed")
	ErrCaptchaRequired    = goerr.New("captcha verification required")

	ErrScheduleIncomplete = goerr.New("scheduled publication requires both date and time")
	ErrScheduleNotFuture  = goerr.New("scheduled publication time must be in the future")
)

// Context keys for error values
const (
	FieldNameKey   = "field_name"
	FieldTypeKey   = "field_type"
	FieldErrorsKey = "field_errors"
	ScheduledAtKey = "scheduled_at"
)
