package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
)

func runFieldRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Field().Create(ctx, &model.RegistrationField{
			SeasonID:     1,
			Name:         "robot_weight",
			Label:        "Robot weight, kg",
			Type:         types.FieldTypeNumber,
			Required:     true,
			DisplayOrder: 3,
			Active:       true,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(int64(0))

		retrieved, err := repo.Field().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("robot_weight")
		gt.Value(t, retrieved.Type).Equal(types.FieldTypeNumber)
		gt.Bool(t, retrieved.Required).True()
	})

	t.Run("Get returns error for non-existent field", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Field().Get(ctx, time.Now().UnixNano())
		gt.Value(t, err).NotNil()
	})

	t.Run("ListBySeason orders by display order and includes inactive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Field().Create(ctx, &model.RegistrationField{
			SeasonID: 1, Name: "second", Label: "Second", Type: types.FieldTypeText,
			DisplayOrder: 2, Active: true,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Field().Create(ctx, &model.RegistrationField{
			SeasonID: 1, Name: "hidden", Label: "Hidden", Type: types.FieldTypeText,
			DisplayOrder: 3, Active: false,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Field().Create(ctx, &model.RegistrationField{
			SeasonID: 1, Name: "first", Label: "First", Type: types.FieldTypeText,
			DisplayOrder: 1, Active: true,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Field().Create(ctx, &model.RegistrationField{
			SeasonID: 2, Name: "other_season", Label: "Other", Type: types.FieldTypeText,
			DisplayOrder: 1, Active: true,
		})
		gt.NoError(t, err).Required()

		fields, err := repo.Field().ListBySeason(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, fields).Length(3)
		gt.Value(t, fields[0].Name).Equal("first")
		gt.Value(t, fields[1].Name).Equal("second")
		gt.Value(t, fields[2].Name).Equal("hidden")
	})

	t.Run("Update replaces options", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Field().Create(ctx, &model.RegistrationField{
			SeasonID: 1, Name: "robot_kit", Label: "Robot kit",
			Type:    types.FieldTypeSelect,
			Options: []string{"LEGO", "Arduino"},
			Active:  true,
		})
		gt.NoError(t, err).Required()

		created.Options = []string{"LEGO", "Arduino", "Custom"}
		updated, err := repo.Field().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Options).Length(3)
	})

	t.Run("Delete removes field", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Field().Create(ctx, &model.RegistrationField{
			SeasonID: 1, Name: "to_delete", Label: "To delete", Type: types.FieldTypeText,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Field().Delete(ctx, created.ID)).Required()

		_, err = repo.Field().Get(ctx, created.ID)
		gt.Value(t, err).NotNil()
	})
}

func TestFieldRepository_Memory(t *testing.T) {
	runFieldRepositoryTest(t, newMemoryRepo)
}

func TestFieldRepository_Firestore(t *testing.T) {
	runFieldRepositoryTest(t, newFirestoreRepo)
}
