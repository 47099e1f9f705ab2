package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/repository/memory"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func TestSeasonYearUniqueness(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	_, err := uc.Season.Create(ctx, &model.Season{Year: 2026, Name: "RoboFest 2026"})
	gt.NoError(t, err).Required()

	_, err = uc.Season.Create(ctx, &model.Season{Year: 2026, Name: "Duplicate"})
	gt.Bool(t, errors.Is(err, usecase.ErrSeasonYearTaken)).True()

	_, err = uc.Season.Create(ctx, &model.Season{Year: 2027, Name: "RoboFest 2027"})
	gt.NoError(t, err)
}

func TestSeasonSingleCurrent(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	first, err := uc.Season.Create(ctx, &model.Season{Year: 2025, IsCurrent: true})
	gt.NoError(t, err).Required()
	second, err := uc.Season.Create(ctx, &model.Season{Year: 2026})
	gt.NoError(t, err).Required()

	_, err = uc.Season.SetCurrent(ctx, second.ID)
	gt.NoError(t, err).Required()

	current, err := uc.Season.GetCurrent(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, current.ID).Equal(second.ID)

	demoted, err := uc.Season.Get(ctx, first.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, demoted.IsCurrent).False()
}

func TestSeasonFinalize(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	season, err := uc.Season.Create(ctx, &model.Season{
		Year: 2025, Name: "RoboFest 2025", IsCurrent: true, RegistrationOpen: true,
	})
	gt.NoError(t, err).Required()

	for i := 0; i < 3; i++ {
		_, err := repo.Team().Create(ctx, &model.Team{
			SeasonID: season.ID, Name: "Team", Status: types.TeamStatusApproved,
		})
		gt.NoError(t, err).Required()
	}

	archive, err := uc.Season.Finalize(ctx, season.ID, &usecase.FinalizeInput{
		FirstPlace: "Robotroopers", SecondPlace: "Gear Heads", ThirdPlace: "Circuit Breakers",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, archive.Year).Equal(2025)
	gt.Value(t, archive.TeamsCount).Equal(3)

	finalized, err := uc.Season.Get(ctx, season.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, finalized.IsArchived).True()
	gt.Bool(t, finalized.IsCurrent).False()
	gt.Bool(t, finalized.RegistrationOpen).False()

	// Finalizing twice fails, and archived seasons cannot become current
	_, err = uc.Season.Finalize(ctx, season.ID, &usecase.FinalizeInput{})
	gt.Bool(t, errors.Is(err, usecase.ErrSeasonArchived)).True()
	_, err = uc.Season.SetCurrent(ctx, season.ID)
	gt.Bool(t, errors.Is(err, usecase.ErrSeasonArchived)).True()
}

func TestSeasonFieldNameUniqueness(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	season, err := uc.Season.Create(ctx, &model.Season{Year: 2026})
	gt.NoError(t, err).Required()

	field, err := uc.Season.CreateField(ctx, &model.RegistrationField{
		SeasonID: season.ID, Name: "coach_name", Label: "Coach",
		Type: types.FieldTypeText, Active: true,
	})
	gt.NoError(t, err).Required()

	_, err = uc.Season.CreateField(ctx, &model.RegistrationField{
		SeasonID: season.ID, Name: "coach_name", Label: "Other",
		Type: types.FieldTypeText, Active: true,
	})
	gt.Bool(t, errors.Is(err, usecase.ErrDuplicateFieldName)).True()

	// Deactivating does not free the name
	field.Active = false
	_, err = uc.Season.UpdateField(ctx, field)
	gt.NoError(t, err).Required()
	_, err = uc.Season.CreateField(ctx, &model.RegistrationField{
		SeasonID: season.ID, Name: "coach_name", Label: "Third",
		Type: types.FieldTypeText, Active: true,
	})
	gt.Bool(t, errors.Is(err, usecase.ErrDuplicateFieldName)).True()

	// Another season may reuse the name
	other, err := uc.Season.Create(ctx, &model.Season{Year: 2027})
	gt.NoError(t, err).Required()
	_, err = uc.Season.CreateField(ctx, &model.RegistrationField{
		SeasonID: other.ID, Name: "coach_name", Label: "Coach",
		Type: types.FieldTypeText, Active: true,
	})
	gt.NoError(t, err)
}

func TestSeasonFieldValidation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	season, err := uc.Season.Create(ctx, &model.Season{Year: 2026})
	gt.NoError(t, err).Required()

	_, err = uc.Season.CreateField(ctx, &model.RegistrationField{
		SeasonID: season.ID, Name: "Bad Name", Label: "Bad",
		Type: types.FieldTypeText,
	})
	gt.Bool(t, errors.Is(err, model.ErrInvalidFieldName)).True()

	_, err = uc.Season.CreateField(ctx, &model.RegistrationField{
		SeasonID: season.ID, Name: "category", Label: "Category",
		Type: types.FieldTypeSelect,
	})
	gt.Bool(t, errors.Is(err, model.ErrSelectWithoutOptions)).True()
}
