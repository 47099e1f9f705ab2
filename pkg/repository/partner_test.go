package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

func runPartnerRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("List orders by display order and filters inactive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Partner().Create(ctx, &model.Partner{
			Name: "Beta Robotics", DisplayOrder: 2, Active: true,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Partner().Create(ctx, &model.Partner{
			Name: "Alpha Labs", DisplayOrder: 1, Active: true,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Partner().Create(ctx, &model.Partner{
			Name: "Former Sponsor", DisplayOrder: 3, Active: false,
		})
		gt.NoError(t, err).Required()

		active, err := repo.Partner().List(ctx, true)
		gt.NoError(t, err).Required()
		gt.Array(t, active).Length(2)
		gt.Value(t, active[0].Name).Equal("Alpha Labs")
		gt.Value(t, active[1].Name).Equal("Beta Robotics")

		all, err := repo.Partner().List(ctx, false)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(3)
	})

	t.Run("Update changes tier", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Partner().Create(ctx, &model.Partner{
			Name: "Gamma Tech", Tier: "silver", Active: true,
		})
		gt.NoError(t, err).Required()

		created.Tier = "gold"
		updated, err := repo.Partner().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Tier).Equal("gold")
	})

	t.Run("Delete removes partner", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Partner().Create(ctx, &model.Partner{Name: "Gone"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Partner().Delete(ctx, created.ID)).Required()

		_, err = repo.Partner().Get(ctx, created.ID)
		gt.Value(t, err).NotNil()
	})
}

func TestPartnerRepository_Memory(t *testing.T) {
	runPartnerRepositoryTest(t, newMemoryRepo)
}

func TestPartnerRepository_Firestore(t *testing.T) {
	runPartnerRepositoryTest(t, newFirestoreRepo)
}
