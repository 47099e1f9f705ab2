package model

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// Built-in field names. These exist for every season regardless of the
// admin-defined schema.
const (
	FieldTeamName          = "team_name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldOrganization      = "organization"
	FieldRegion            = "region"
	FieldParticipantsCount = "participants_count"
	FieldLeague            = "league"
	FieldRulesAccepted     = "rules_accepted"
)

// Participant count bounds are a fixed business rule, independent of the
// dynamic schema.
const (
	MinParticipants = 1
	MaxParticipants = 20
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormField is one rendered input of the registration form, either
// built-in or sourced from a RegistrationField descriptor.
type FormField struct {
	Name     string
	Label    string
	Type     types.FieldType
	Options  []string
	Required bool
	Builtin  bool
}

// RegistrationInput carries the values a team submits through the form
type RegistrationInput struct {
	TeamName          string
	Email             string
	Phone             string
	Organization      string
	City              string
	Region            string
	ParticipantsCount int
	League            types.League
	RulesAccepted     bool
	CustomFields      map[string]any
}

// FieldError attributes a validation failure to a single form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult aggregates per-field validation outcomes. The form is
// valid iff every field passed its own rule; there are no cross-field
// rules.
type ValidationResult struct {
	Errors []FieldError
}

// Valid reports whether every field passed validation
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ErrorFor returns the message attached to the named field, or empty
func (r ValidationResult) ErrorFor(name string) string {
	for _, e := range r.Errors {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// RegistrationForm is the combination of built-in fields and the active,
// ordered dynamic fields of one season. A nil season or a season with
// registration closed yields a closed form: no fields, no submission path.
type RegistrationForm struct {
	open   bool
	fields []FormField
}

// NewRegistrationForm builds the form for a season. Dynamic descriptors
// are filtered to active ones and sorted ascending by display order;
// inactive fields never appear.
func NewRegistrationForm(season *Season, dynamic []*RegistrationField) *RegistrationForm {
	if season == nil || !season.RegistrationOpen {
		return &RegistrationForm{open: false}
	}

	fields := builtinFields()

	active := make([]*RegistrationField, 0, len(dynamic))
	for _, fd := range dynamic {
		if fd.Active {
			active = append(active, fd)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DisplayOrder < active[j].DisplayOrder
	})

	for _, fd := range active {
		fields = append(fields, FormField{
			Name:     fd.Name,
			Label:    fd.Label,
			Type:     fd.Type.Normalize(),
			Options:  fd.Options,
			Required: fd.Required,
		})
	}

	return &RegistrationForm{open: true, fields: fields}
}

func builtinFields() []FormField {
	return []FormField{
		{Name: FieldTeamName, Label: "Team name", Type: types.FieldTypeText, Required: true, Builtin: true},
		{Name: FieldEmail, Label: "Email", Type: types.FieldTypeEmail, Required: true, Builtin: true},
		{Name: FieldPhone, Label: "Phone", Type: types.FieldTypePhone, Required: true, Builtin: true},
		{Name: FieldOrganization, Label: "School / university", Type: types.FieldTypeText, Required: true, Builtin: true},
		{Name: FieldRegion, Label: "Region", Type: types.FieldTypeText, Builtin: true},
		{Name: FieldParticipantsCount, Label: "Participants", Type: types.FieldTypeNumber, Required: true, Builtin: true},
		{Name: FieldLeague, Label: "League", Type: types.FieldTypeSelect, Required: true, Builtin: true,
			Options: []string{types.LeagueJunior.String(), types.LeagueSenior.String()}},
		{Name: FieldRulesAccepted, Label: "I accept the competition rules", Type: types.FieldTypeCheckbox, Required: true, Builtin: true},
	}
}

// Open reports whether the form accepts submissions at all
func (f *RegistrationForm) Open() bool {
	return f.open
}

// Fields returns the rendered field sequence in display order
func (f *RegistrationForm) Fields() []FormField {
	return f.fields
}

// DynamicFields returns only the schema-sourced fields
func (f *RegistrationForm) DynamicFields() []FormField {
	var out []FormField
	for _, fld := range f.fields {
		if !fld.Builtin {
			out = append(out, fld)
		}
	}
	return out
}

// Validate checks the input against every field rule and returns the
// aggregated, field-attributed result. It never performs I/O.
func (f *RegistrationForm) Validate(input *RegistrationInput) ValidationResult {
	var result ValidationResult
	if !f.open {
		return result
	}

	f.validateBuiltin(input, &result)

	for _, fld := range f.fields {
		if fld.Builtin {
			continue
		}
		value, present := input.CustomFields[fld.Name]
		if !present || isEmptyValue(value) {
			if fld.Required {
				result.add(fld.Name, "field is required")
			}
			continue
		}
		validateField(fld, value, &result)
	}

	return result
}

func (f *RegistrationForm) validateBuiltin(input *RegistrationInput, result *ValidationResult) {
	if strings.TrimSpace(input.TeamName) == "" {
		result.add(FieldTeamName, "field is required")
	}
	switch {
	case strings.TrimSpace(input.Email) == "":
		result.add(FieldEmail, "field is required")
	case !emailPattern.MatchString(input.Email):
		result.add(FieldEmail, "invalid email address")
	}
	if strings.TrimSpace(input.Phone) == "" {
		result.add(FieldPhone, "field is required")
	}
	if strings.TrimSpace(input.Organization) == "" {
		result.add(FieldOrganization, "field is required")
	}
	if input.ParticipantsCount < MinParticipants || input.ParticipantsCount > MaxParticipants {
		result.add(FieldParticipantsCount, "participant count must be between 1 and 20")
	}
	if !input.League.IsValid() {
		result.add(FieldLeague, "league must be junior or senior")
	}
	if !input.RulesAccepted {
		result.add(FieldRulesAccepted, "rules must be accepted")
	}
}

// fieldValidator checks one non-empty dynamic value against its field
type fieldValidator func(fld FormField, value any, result *ValidationResult)

// Closed dispatch table over field types. Unknown types are normalized to
// text before lookup, so the table is total.
var fieldValidators = map[types.FieldType]fieldValidator{
	types.FieldTypeText:     validateString,
	types.FieldTypePhone:    validateString,
	types.FieldTypeTextarea: validateString,
	types.FieldTypeEmail:    validateEmail,
	types.FieldTypeNumber:   validateNumber,
	types.FieldTypeSelect:   validateSelect,
	types.FieldTypeCheckbox: validateCheckbox,
	types.FieldTypeURL:      validateURL,
	types.FieldTypeDate:     validateDate,
}

func validateField(fld FormField, value any, result *ValidationResult) {
	validate, ok := fieldValidators[fld.Type.Normalize()]
	if !ok {
		validate = validateString
	}
	validate(fld, value, result)
}

func validateString(fld FormField, value any, result *ValidationResult) {
	if _, ok := value.(string); !ok {
		result.add(fld.Name, "value must be a string")
	}
}

func validateEmail(fld FormField, value any, result *ValidationResult) {
	s, ok := value.(string)
	if !ok {
		result.add(fld.Name, "value must be a string")
		return
	}
	if !emailPattern.MatchString(s) {
		result.add(fld.Name, "invalid email address")
	}
}

func validateNumber(fld FormField, value any, result *ValidationResult) {
	switch value.(type) {
	case float64, float32, int, int64, int32:
	default:
		result.add(fld.Name, "value must be a number")
	}
}

func validateSelect(fld FormField, value any, result *ValidationResult) {
	s, ok := value.(string)
	if !ok {
		result.add(fld.Name, "value must be a string")
		return
	}
	for _, opt := range fld.Options {
		if opt == s {
			return
		}
	}
	result.add(fld.Name, "value is not one of the allowed options")
}

func validateCheckbox(fld FormField, value any, result *ValidationResult) {
	b, ok := value.(bool)
	if !ok {
		result.add(fld.Name, "value must be a boolean")
		return
	}
	// Required on a checkbox means the box must be checked
	if fld.Required && !b {
		result.add(fld.Name, "must be checked")
	}
}

func validateURL(fld FormField, value any, result *ValidationResult) {
	s, ok := value.(string)
	if !ok {
		result.add(fld.Name, "value must be a string")
		return
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		result.add(fld.Name, "invalid URL")
	}
}

func validateDate(fld FormField, value any, result *ValidationResult) {
	s, ok := value.(string)
	if !ok {
		result.add(fld.Name, "value must be a string")
		return
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			result.add(fld.Name, "invalid date")
		}
	}
}

// isEmptyValue reports whether a submitted value counts as "not provided".
// A checked-state false is a value for optional checkboxes, but required
// checkbox semantics are handled by the checkbox rule itself.
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}
