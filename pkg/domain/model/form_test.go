package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
)

func openSeason() *model.Season {
	return &model.Season{ID: 1, Year: 2026, Name: "RoboFest 2026", RegistrationOpen: true}
}

func validInput() *model.RegistrationInput {
	return &model.RegistrationInput{
		TeamName:          "Robotroopers",
		Email:             "captain@example.com",
		Phone:             "+7 900 123-45-67",
		Organization:      "School 42",
		ParticipantsCount: 4,
		League:            types.LeagueJunior,
		RulesAccepted:     true,
	}
}

func TestFormFieldOrder(t *testing.T) {
	dynamic := []*model.RegistrationField{
		{Name: "coach_name", Label: "Coach", Type: types.FieldTypeText, DisplayOrder: 20, Active: true},
		{Name: "robot_name", Label: "Robot", Type: types.FieldTypeText, DisplayOrder: 10, Active: true},
		{Name: "retired", Label: "Retired", Type: types.FieldTypeText, DisplayOrder: 5, Active: false},
	}

	form := model.NewRegistrationForm(openSeason(), dynamic)
	gt.Bool(t, form.Open()).True()

	fields := form.Fields()

	// Built-ins first, then active dynamic fields ascending by display
	// order. The inactive field never appears.
	gt.Array(t, fields).Length(10)
	gt.Value(t, fields[0].Name).Equal(model.FieldTeamName)
	gt.Value(t, fields[1].Name).Equal(model.FieldEmail)
	gt.Value(t, fields[8].Name).Equal("robot_name")
	gt.Value(t, fields[9].Name).Equal("coach_name")
	for _, f := range fields {
		gt.Value(t, f.Name).NotEqual("retired")
	}

	dyn := form.DynamicFields()
	gt.Array(t, dyn).Length(2)
	gt.Value(t, dyn[0].Name).Equal("robot_name")
	gt.Value(t, dyn[1].Name).Equal("coach_name")
}

func TestFormClosed(t *testing.T) {
	t.Run("nil season", func(t *testing.T) {
		form := model.NewRegistrationForm(nil, nil)
		gt.Bool(t, form.Open()).False()
		gt.Array(t, form.Fields()).Length(0)
	})

	t.Run("registration closed", func(t *testing.T) {
		season := openSeason()
		season.RegistrationOpen = false
		form := model.NewRegistrationForm(season, nil)
		gt.Bool(t, form.Open()).False()
		gt.Array(t, form.Fields()).Length(0)
	})
}

func TestFormValidateBuiltins(t *testing.T) {
	form := model.NewRegistrationForm(openSeason(), nil)

	t.Run("valid input passes", func(t *testing.T) {
		result := form.Validate(validInput())
		gt.Bool(t, result.Valid()).True()
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		result := form.Validate(&model.RegistrationInput{})
		gt.Bool(t, result.Valid()).False()
		gt.Value(t, result.ErrorFor(model.FieldTeamName)).Equal("field is required")
		gt.Value(t, result.ErrorFor(model.FieldEmail)).Equal("field is required")
		gt.Value(t, result.ErrorFor(model.FieldPhone)).Equal("field is required")
		gt.Value(t, result.ErrorFor(model.FieldRulesAccepted)).NotEqual("")
	})

	t.Run("bad email format", func(t *testing.T) {
		input := validInput()
		input.Email = "not-an-email"
		result := form.Validate(input)
		gt.Value(t, result.ErrorFor(model.FieldEmail)).Equal("invalid email address")
	})

	t.Run("participant bounds", func(t *testing.T) {
		input := validInput()
		input.ParticipantsCount = 0
		gt.Bool(t, form.Validate(input).Valid()).False()

		input.ParticipantsCount = 21
		gt.Bool(t, form.Validate(input).Valid()).False()

		input.ParticipantsCount = 20
		gt.Bool(t, form.Validate(input).Valid()).True()
	})

	t.Run("invalid league", func(t *testing.T) {
		input := validInput()
		input.League = types.League("pro")
		result := form.Validate(input)
		gt.Bool(t, result.Valid()).False()
		gt.Value(t, result.ErrorFor(model.FieldLeague)).NotEqual("")
	})
}

func TestFormValidateDynamic(t *testing.T) {
	dynamic := []*model.RegistrationField{
		{Name: "coach_email", Label: "Coach email", Type: types.FieldTypeEmail, Required: true, DisplayOrder: 1, Active: true},
		{Name: "robot_weight", Label: "Weight", Type: types.FieldTypeNumber, DisplayOrder: 2, Active: true},
		{Name: "category", Label: "Category", Type: types.FieldTypeSelect, Options: []string{"sumo", "line"}, DisplayOrder: 3, Active: true},
		{Name: "consent", Label: "Consent", Type: types.FieldTypeCheckbox, Required: true, DisplayOrder: 4, Active: true},
		{Name: "site", Label: "Site", Type: types.FieldTypeURL, DisplayOrder: 5, Active: true},
		{Name: "birth_date", Label: "Birth date", Type: types.FieldTypeDate, DisplayOrder: 6, Active: true},
	}
	form := model.NewRegistrationForm(openSeason(), dynamic)

	valid := func() *model.RegistrationInput {
		input := validInput()
		input.CustomFields = map[string]any{
			"coach_email": "coach@example.com",
			"consent":     true,
		}
		return input
	}

	t.Run("optional fields may be absent", func(t *testing.T) {
		gt.Bool(t, form.Validate(valid()).Valid()).True()
	})

	t.Run("required dynamic field missing", func(t *testing.T) {
		input := valid()
		delete(input.CustomFields, "coach_email")
		result := form.Validate(input)
		gt.Value(t, result.ErrorFor("coach_email")).Equal("field is required")
	})

	t.Run("blank string counts as missing", func(t *testing.T) {
		input := valid()
		input.CustomFields["coach_email"] = "   "
		result := form.Validate(input)
		gt.Value(t, result.ErrorFor("coach_email")).Equal("field is required")
	})

	t.Run("type rules", func(t *testing.T) {
		input := valid()
		input.CustomFields["robot_weight"] = "heavy"
		input.CustomFields["category"] = "drone"
		input.CustomFields["site"] = "not a url"
		input.CustomFields["birth_date"] = "31-12-2010"

		result := form.Validate(input)
		gt.Value(t, result.ErrorFor("robot_weight")).Equal("value must be a number")
		gt.Value(t, result.ErrorFor("category")).Equal("value is not one of the allowed options")
		gt.Value(t, result.ErrorFor("site")).Equal("invalid URL")
		gt.Value(t, result.ErrorFor("birth_date")).Equal("invalid date")
	})

	t.Run("required checkbox must be checked", func(t *testing.T) {
		input := valid()
		input.CustomFields["consent"] = false
		result := form.Validate(input)
		gt.Value(t, result.ErrorFor("consent")).Equal("must be checked")
	})

	t.Run("number accepts json float", func(t *testing.T) {
		input := valid()
		input.CustomFields["robot_weight"] = float64(3)
		gt.Bool(t, form.Validate(input).Valid()).True()
	})

	t.Run("date accepts both layouts", func(t *testing.T) {
		input := valid()
		input.CustomFields["birth_date"] = "2010-12-31"
		gt.Bool(t, form.Validate(input).Valid()).True()

		input.CustomFields["birth_date"] = "2010-12-31T00:00:00Z"
		gt.Bool(t, form.Validate(input).Valid()).True()
	})

	t.Run("closed form skips validation", func(t *testing.T) {
		closed := model.NewRegistrationForm(nil, nil)
		gt.Bool(t, closed.Validate(&model.RegistrationInput{}).Valid()).True()
	})
}

func TestFieldDefinitionValidate(t *testing.T) {
	base := func() *model.RegistrationField {
		return &model.RegistrationField{
			Name:  "coach_name",
			Label: "Coach",
			Type:  types.FieldTypeText,
		}
	}

	t.Run("valid", func(t *testing.T) {
		gt.NoError(t, base().Validate())
	})

	t.Run("bad name characters", func(t *testing.T) {
		f := base()
		f.Name = "Coach Name"
		err := f.Validate()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrInvalidFieldName)).True()
	})

	t.Run("unknown type", func(t *testing.T) {
		f := base()
		f.Type = types.FieldType("slider")
		err := f.Validate()
		gt.Bool(t, errors.Is(err, model.ErrInvalidFieldType)).True()
	})

	t.Run("select without options", func(t *testing.T) {
		f := base()
		f.Type = types.FieldTypeSelect
		err := f.Validate()
		gt.Bool(t, errors.Is(err, model.ErrSelectWithoutOptions)).True()
	})

	t.Run("select with options", func(t *testing.T) {
		f := base()
		f.Type = types.FieldTypeSelect
		f.Options = []string{"a"}
		gt.NoError(t, f.Validate())
	})
}
