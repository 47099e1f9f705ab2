package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
)

func runContactRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Contact().Create(ctx, &model.ContactMessage{
			Name:    "Ivan Petrov",
			Email:   "ivan@example.com",
			Topic:   types.ContactTopicRegistration,
			Message: "How do I register a second team?",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(int64(0))

		retrieved, err := repo.Contact().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Topic).Equal(types.ContactTopicRegistration)
		gt.Bool(t, retrieved.IsRead).False()
	})

	t.Run("CountUnread tracks read flag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Contact().Create(ctx, &model.ContactMessage{
			Name: "A", Email: "a@example.com", Message: "one",
		})
		gt.NoError(t, err).Required()
		_, err = repo.Contact().Create(ctx, &model.ContactMessage{
			Name: "B", Email: "b@example.com", Message: "two",
		})
		gt.NoError(t, err).Required()

		unread, err := repo.Contact().CountUnread(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, unread).Equal(2)

		first.IsRead = true
		_, err = repo.Contact().Update(ctx, first)
		gt.NoError(t, err).Required()

		unread, err = repo.Contact().CountUnread(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, unread).Equal(1)
	})

	t.Run("Delete removes message", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Contact().Create(ctx, &model.ContactMessage{
			Name: "Gone", Email: "gone@example.com", Message: "bye",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Contact().Delete(ctx, created.ID)).Required()

		_, err = repo.Contact().Get(ctx, created.ID)
		gt.Value(t, err).NotNil()
	})
}

func TestContactRepository_Memory(t *testing.T) {
	runContactRepositoryTest(t, newMemoryRepo)
}

func TestContactRepository_Firestore(t *testing.T) {
	runContactRepositoryTest(t, newFirestoreRepo)
}
