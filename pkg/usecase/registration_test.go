package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/repository/memory"
	"github.com/robofest-ru/robofest/pkg/service/captcha"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func setupSeason(t *testing.T, repo interfaces.Repository, open bool) *model.Season {
	t.Helper()
	season, err := repo.Season().Create(context.Background(), &model.Season{
		Year:             2026,
		Name:             "RoboFest 2026",
		RegistrationOpen: open,
		IsCurrent:        true,
	})
	gt.NoError(t, err).Required()
	return season
}

func submitRequest() *usecase.SubmitRequest {
	return &usecase.SubmitRequest{
		Input: model.RegistrationInput{
			TeamName:          "Robotroopers",
			Email:             "captain@example.com",
			Phone:             "+7 900 123-45-67",
			Organization:      "School 42",
			ParticipantsCount: 4,
			League:            types.LeagueJunior,
			RulesAccepted:     true,
		},
	}
}

func TestSubmitCreatesPendingTeam(t *testing.T) {
	repo := memory.New()
	season := setupSeason(t, repo, true)
	uc := usecase.New(repo)

	team, err := uc.Registration.Submit(context.Background(), submitRequest())
	gt.NoError(t, err).Required()
	gt.Value(t, team.SeasonID).Equal(season.ID)
	gt.Value(t, team.Status).Equal(types.TeamStatusPending)
	gt.Value(t, team.Name).Equal("Robotroopers")
	gt.Value(t, team.RegistrationNumber).NotEqual("")
}

func TestSubmitRegistrationClosed(t *testing.T) {
	t.Run("no current season", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Registration.Submit(context.Background(), submitRequest())
		gt.Bool(t, errors.Is(err, model.ErrRegistrationClosed)).True()
	})

	t.Run("registration closed", func(t *testing.T) {
		repo := memory.New()
		setupSeason(t, repo, false)
		uc := usecase.New(repo)
		_, err := uc.Registration.Submit(context.Background(), submitRequest())
		gt.Bool(t, errors.Is(err, model.ErrRegistrationClosed)).True()
	})
}

func TestSubmitValidationPrecedesPersistence(t *testing.T) {
	repo := memory.New()
	setupSeason(t, repo, true)
	uc := usecase.New(repo)

	req := submitRequest()
	req.Input.Email = "not-an-email"
	req.Input.TeamName = ""

	_, err := uc.Registration.Submit(context.Background(), req)
	gt.Bool(t, errors.Is(err, model.ErrValidation)).True()

	teams, err := repo.Team().List(context.Background(), interfaces.TeamFilter{})
	gt.NoError(t, err)
	gt.Array(t, teams).Length(0)
}

func TestSubmitCaptchaBlocksBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	repo := memory.New()
	setupSeason(t, repo, true)
	uc := usecase.New(repo,
		usecase.WithCaptcha(captcha.New("secret", captcha.WithEndpoint(srv.URL))),
	)

	// Without a widget token the gate blocks locally; the verification
	// service is never contacted.
	_, err := uc.Registration.Submit(context.Background(), submitRequest())
	gt.Bool(t, errors.Is(err, model.ErrCaptchaRequired)).True()
	gt.Value(t, calls.Load()).Equal(int32(0))

	// With a token the remote check runs and the submission goes through
	req := submitRequest()
	req.CaptchaToken = "widget-token"
	_, err = uc.Registration.Submit(context.Background(), req)
	gt.NoError(t, err)
	gt.Value(t, calls.Load()).Equal(int32(1))
}

func TestCaptchaConnectionTest(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Registration.TestCaptcha(context.Background(), "token", "127.0.0.1")
		gt.Bool(t, errors.Is(err, usecase.ErrCaptchaNotConfigured)).True()
	})

	t.Run("service reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		uc := usecase.New(memory.New(),
			usecase.WithCaptcha(captcha.New("secret", captcha.WithEndpoint(srv.URL))),
		)
		ok, err := uc.Registration.TestCaptcha(context.Background(), "token", "127.0.0.1")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
	})

	t.Run("outage surfaces instead of failing open", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		uc := usecase.New(memory.New(),
			usecase.WithCaptcha(captcha.New("secret", captcha.WithEndpoint(srv.URL))),
		)
		_, err := uc.Registration.TestCaptcha(context.Background(), "token", "127.0.0.1")
		gt.Error(t, err)
	})
}

func TestSubmitCustomFieldsOmittedWhenEmpty(t *testing.T) {
	repo := memory.New()
	season := setupSeason(t, repo, true)
	_, err := repo.Field().Create(context.Background(), &model.RegistrationField{
		SeasonID: season.ID,
		Name:     "coach_name",
		Label:    "Coach",
		Type:     types.FieldTypeText,
		Active:   true,
	})
	gt.NoError(t, err).Required()
	uc := usecase.New(repo)

	t.Run("empty dynamic values leave the map nil", func(t *testing.T) {
		req := submitRequest()
		req.Input.CustomFields = map[string]any{"coach_name": ""}
		team, err := uc.Registration.Submit(context.Background(), req)
		gt.NoError(t, err).Required()
		gt.Value(t, team.CustomFields).Nil()
	})

	t.Run("non-empty values are kept", func(t *testing.T) {
		req := submitRequest()
		req.Input.Email = "other@example.com"
		req.Input.CustomFields = map[string]any{
			"coach_name": "A. Ivanova",
			"unknown":    "dropped",
		}
		team, err := uc.Registration.Submit(context.Background(), req)
		gt.NoError(t, err).Required()
		gt.Value(t, team.CustomFields).Equal(map[string]any{"coach_name": "A. Ivanova"})
	})
}

func TestSubmitSingleFlight(t *testing.T) {
	repo := memory.New()
	setupSeason(t, repo, true)
	uc := usecase.New(repo)

	const attempts = 8
	var wg sync.WaitGroup
	var succeeded, rejected atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Registration.Submit(context.Background(), submitRequest())
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, usecase.ErrSubmissionInFlight):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	// Every attempt resolved one way or the other, and at least one got
	// through. Timing decides how many overlapped.
	gt.Number(t, succeeded.Load()).Greater(0)
	gt.Value(t, succeeded.Load()+rejected.Load()).Equal(int32(attempts))
}

func TestFormReflectsSeasonState(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)

	form, season, err := uc.Registration.Form(context.Background())
	gt.NoError(t, err).Required()
	gt.Value(t, season).Nil()
	gt.Bool(t, form.Open()).False()

	created := setupSeason(t, repo, true)
	_, err = repo.Field().Create(context.Background(), &model.RegistrationField{
		SeasonID: created.ID, Name: "robot_name", Label: "Robot",
		Type: types.FieldTypeText, Active: true,
	})
	gt.NoError(t, err).Required()

	form, season, err = uc.Registration.Form(context.Background())
	gt.NoError(t, err).Required()
	gt.Value(t, season.ID).Equal(created.ID)
	gt.Bool(t, form.Open()).True()
	gt.Array(t, form.DynamicFields()).Length(1)
}
