package types

// FieldType represents the input type of a registration form field
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeURL      FieldType = "url"
	FieldTypeDate     FieldType = "date"
)

// AllFieldTypes returns all valid field types
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeEmail,
		FieldTypePhone,
		FieldTypeNumber,
		FieldTypeSelect,
		FieldTypeCheckbox,
		FieldTypeTextarea,
		FieldTypeURL,
		FieldTypeDate,
	}
}

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText,
		FieldTypeEmail,
		FieldTypePhone,
		FieldTypeNumber,
		FieldTypeSelect,
		FieldTypeCheckbox,
		FieldTypeTextarea,
		FieldTypeURL,
		FieldTypeDate:
		return true
	default:
		return false
	}
}

// Normalize maps unknown field types to text so that schema entries written
// by newer admin versions still render instead of failing.
func (t FieldType) Normalize() FieldType {
	if !t.IsValid() {
		return FieldTypeText
	}
	return t
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}
