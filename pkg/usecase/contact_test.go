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

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	t.Run("valid message is stored", func(t *testing.T) {
		created, err := uc.Contact.Submit(ctx, &model.ContactMessage{
			Name:    "Ivan",
			Email:   "ivan@example.com",
			Topic:   types.ContactTopicRegistration,
			Message: "How do I register a second team?",
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, created.IsRead).False()

		unread, err := repo.Contact().CountUnread(ctx)
		gt.NoError(t, err)
		gt.Value(t, unread).Equal(1)
	})

	t.Run("validation is field attributed", func(t *testing.T) {
		_, err := uc.Contact.Submit(ctx, &model.ContactMessage{Topic: types.ContactTopic("spam")})
		gt.Bool(t, errors.Is(err, model.ErrValidation)).True()
	})
}

func TestContactLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	created, err := uc.Contact.Submit(ctx, &model.ContactMessage{
		Name: "Ivan", Email: "ivan@example.com",
		Topic: types.ContactTopicOther, Message: "Hello",
	})
	gt.NoError(t, err).Required()

	read, err := uc.Contact.MarkRead(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, read.IsRead).True()

	replied, err := uc.Contact.MarkReplied(ctx, created.ID, 7)
	gt.NoError(t, err).Required()
	gt.Bool(t, replied.IsReplied).True()
	gt.Value(t, replied.RepliedBy).Equal(int64(7))
	gt.Value(t, replied.RepliedAt).NotNil()

	unread, err := repo.Contact().CountUnread(ctx)
	gt.NoError(t, err)
	gt.Value(t, unread).Equal(0)

	gt.NoError(t, uc.Contact.Delete(ctx, created.ID))
	_, err = uc.Contact.Get(ctx, created.ID)
	gt.Bool(t, errors.Is(err, model.ErrNotFound)).True()
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	season, err := repo.Season().Create(ctx, &model.Season{Year: 2026, IsCurrent: true})
	gt.NoError(t, err).Required()

	for _, status := range []types.TeamStatus{types.TeamStatusPending, types.TeamStatusPending, types.TeamStatusApproved} {
		_, err := repo.Team().Create(ctx, &model.Team{SeasonID: season.ID, Name: "Team", Status: status})
		gt.NoError(t, err).Required()
	}
	_, err = repo.News().Create(ctx, &model.News{Title: "Article", Slug: "article"})
	gt.NoError(t, err).Required()
	_, err = repo.Contact().Create(ctx, &model.ContactMessage{Name: "Ivan", Email: "i@example.com", Message: "Hi"})
	gt.NoError(t, err).Required()

	stats, err := uc.Dashboard.Stats(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, stats.CurrentSeasonTeams).Equal(3)
	gt.Value(t, stats.PendingTeams).Equal(2)
	gt.Value(t, stats.RecentTeams).Equal(3)
	gt.Value(t, stats.TotalNews).Equal(1)
	gt.Value(t, stats.UnreadContacts).Equal(1)
	gt.Value(t, stats.TotalPartners).Equal(0)
	gt.Value(t, stats.TotalUsers).Equal(0)
}
