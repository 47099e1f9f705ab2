package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

func TestPublishIntentValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("draft and now need no timestamp", func(t *testing.T) {
		gt.NoError(t, model.PublishIntent{Kind: model.PublishDraft}.Validate(now))
		gt.NoError(t, model.PublishIntent{Kind: model.PublishNow}.Validate(now))
	})

	t.Run("scheduled in the future", func(t *testing.T) {
		intent := model.PublishIntent{Kind: model.PublishScheduled, At: now.Add(time.Minute)}
		gt.NoError(t, intent.Validate(now))
	})

	t.Run("scheduled without timestamp", func(t *testing.T) {
		err := model.PublishIntent{Kind: model.PublishScheduled}.Validate(now)
		gt.Bool(t, errors.Is(err, model.ErrScheduleIncomplete)).True()
	})

	t.Run("scheduled exactly now is rejected", func(t *testing.T) {
		err := model.PublishIntent{Kind: model.PublishScheduled, At: now}.Validate(now)
		gt.Bool(t, errors.Is(err, model.ErrScheduleNotFuture)).True()
	})

	t.Run("scheduled in the past is rejected", func(t *testing.T) {
		err := model.PublishIntent{Kind: model.PublishScheduled, At: now.Add(-time.Hour)}.Validate(now)
		gt.Bool(t, errors.Is(err, model.ErrScheduleNotFuture)).True()
	})

	t.Run("unknown kind", func(t *testing.T) {
		gt.Error(t, model.PublishIntent{Kind: model.PublishKind("later")}.Validate(now))
	})
}

func TestPublishIntentProjection(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	published, scheduledAt := model.PublishIntent{Kind: model.PublishDraft}.Projection()
	gt.Bool(t, published).False()
	gt.Value(t, scheduledAt).Nil()

	published, scheduledAt = model.PublishIntent{Kind: model.PublishNow}.Projection()
	gt.Bool(t, published).True()
	gt.Value(t, scheduledAt).Nil()

	published, scheduledAt = model.PublishIntent{Kind: model.PublishScheduled, At: at}.Projection()
	gt.Bool(t, published).False()
	gt.Value(t, scheduledAt).NotNil()
	gt.Value(t, *scheduledAt).Equal(at)
}

func TestIntentOfRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	intents := []model.PublishIntent{
		{Kind: model.PublishDraft},
		{Kind: model.PublishNow},
		{Kind: model.PublishScheduled, At: at},
	}
	for _, intent := range intents {
		published, scheduledAt := intent.Projection()
		gt.Value(t, model.IntentOf(published, scheduledAt)).Equal(intent)
	}

	// A published record with a stale schedule still reads as Now
	gt.Value(t, model.IntentOf(true, &at).Kind).Equal(model.PublishNow)
}

func TestScheduleAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	gt.NoError(t, err).Required()

	t.Run("combines picker values in the display timezone", func(t *testing.T) {
		at, err := model.ScheduleAt("2026-03-02", "09:30", loc)
		gt.NoError(t, err)
		gt.Value(t, at).Equal(time.Date(2026, 3, 2, 9, 30, 0, 0, loc))
	})

	t.Run("either part missing", func(t *testing.T) {
		_, err := model.ScheduleAt("", "09:30", loc)
		gt.Bool(t, errors.Is(err, model.ErrScheduleIncomplete)).True()

		_, err = model.ScheduleAt("2026-03-02", "", loc)
		gt.Bool(t, errors.Is(err, model.ErrScheduleIncomplete)).True()
	})

	t.Run("malformed values", func(t *testing.T) {
		_, err := model.ScheduleAt("03/02/2026", "09:30", loc)
		gt.Error(t, err)
	})
}
