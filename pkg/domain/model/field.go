package model

import (
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/types"
)

var fieldNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// RegistrationField is an admin-defined form field attached to a season.
// The public registration form consumes fields read-only, filtered to
// Active and ordered by DisplayOrder.
type RegistrationField struct {
	ID           int64
	SeasonID     int64
	Name         string
	Label        string
	Type         types.FieldType
	Options      []string
	Required     bool
	DisplayOrder int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the structural invariants of the field definition.
// Per-season name uniqueness is enforced by the use case, not here.
func (f *RegistrationField) Validate() error {
	if f.Name == "" {
		return goerr.New("field name is required")
	}
	if !fieldNamePattern.MatchString(f.Name) {
		return goerr.Wrap(ErrInvalidFieldName, "field name must match [a-z0-9_]+",
			goerr.V(FieldNameKey, f.Name))
	}
	if f.Label == "" {
		return goerr.New("field label is required", goerr.V(FieldNameKey, f.Name))
	}
	if !f.Type.IsValid() {
		return goerr.Wrap(ErrInvalidFieldType, "unknown field type",
			goerr.V(FieldNameKey, f.Name),
			goerr.V(FieldTypeKey, f.Type))
	}
	if f.Type == types.FieldTypeSelect && len(f.Options) == 0 {
		return goerr.Wrap(ErrSelectWithoutOptions, "select field requires at least one option",
			goerr.V(FieldNameKey, f.Name))
	}
	return nil
}
