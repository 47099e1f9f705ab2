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

func runTeamRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create preserves custom fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Team().Create(ctx, &model.Team{
			SeasonID:          1,
			Name:              "Robotroopers",
			Email:             "captain@example.com",
			ParticipantsCount: 5,
			League:            types.LeagueJunior,
			Status:            types.TeamStatusPending,
			CustomFields: map[string]any{
				"robot_kit":    "LEGO",
				"robot_weight": 2.5,
			},
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.Team().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("Robotroopers")
		gt.Number(t, len(retrieved.CustomFields)).Equal(2)
		gt.Value(t, retrieved.CustomFields["robot_kit"]).Equal("LEGO")
	})

	t.Run("Create keeps nil custom fields nil", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Team().Create(ctx, &model.Team{
			SeasonID: 1,
			Name:     "No Extras",
			Email:    "plain@example.com",
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.Team().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Number(t, len(retrieved.CustomFields)).Equal(0)
	})

	t.Run("List filters by season, status and league", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Team().Create(ctx, &model.Team{
			SeasonID: 1, Name: "A", Status: types.TeamStatusApproved, League: types.LeagueJunior,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Team().Create(ctx, &model.Team{
			SeasonID: 1, Name: "B", Status: types.TeamStatusPending, League: types.LeagueSenior,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Team().Create(ctx, &model.Team{
			SeasonID: 2, Name: "C", Status: types.TeamStatusApproved, League: types.LeagueJunior,
		})
		gt.NoError(t, err).Required()

		bySeason, err := repo.Team().List(ctx, interfaces.TeamFilter{SeasonID: 1})
		gt.NoError(t, err).Required()
		gt.Array(t, bySeason).Length(2)

		approved, err := repo.Team().List(ctx, interfaces.TeamFilter{Status: types.TeamStatusApproved})
		gt.NoError(t, err).Required()
		gt.Array(t, approved).Length(2)

		juniorSeason1, err := repo.Team().List(ctx, interfaces.TeamFilter{
			SeasonID: 1, League: types.LeagueJunior,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, juniorSeason1).Length(1)
		gt.Value(t, juniorSeason1[0].Name).Equal("A")
	})

	t.Run("Count matches filter", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, name := range []string{"X", "Y", "Z"} {
			_, err := repo.Team().Create(ctx, &model.Team{
				SeasonID: 1, Name: name, Status: types.TeamStatusPending,
			})
			gt.NoError(t, err).Required()
		}

		count, err := repo.Team().Count(ctx, interfaces.TeamFilter{SeasonID: 1})
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(3)
	})

	t.Run("CountCreatedSince counts recent registrations", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Team().Create(ctx, &model.Team{SeasonID: 1, Name: "Recent"})
		gt.NoError(t, err).Required()

		count, err := repo.Team().CountCreatedSince(ctx, time.Now().Add(-time.Hour))
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(1)

		future, err := repo.Team().CountCreatedSince(ctx, time.Now().Add(time.Hour))
		gt.NoError(t, err).Required()
		gt.Value(t, future).Equal(0)
	})

	t.Run("Update changes status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Team().Create(ctx, &model.Team{
			SeasonID: 1, Name: "Pending Team", Status: types.TeamStatusPending,
		})
		gt.NoError(t, err).Required()

		created.Status = types.TeamStatusApproved
		updated, err := repo.Team().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.TeamStatusApproved)
	})

	t.Run("Delete removes team", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Team().Create(ctx, &model.Team{SeasonID: 1, Name: "Gone"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Team().Delete(ctx, created.ID)).Required()

		_, err = repo.Team().Get(ctx, created.ID)
		gt.Value(t, err).NotNil()
	})
}

func TestTeamRepository_Memory(t *testing.T) {
	runTeamRepositoryTest(t, newMemoryRepo)
}

func TestTeamRepository_Firestore(t *testing.T) {
	runTeamRepositoryTest(t, newFirestoreRepo)
}
