package usecase

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/service/captcha"
	"github.com/robofest-ru/robofest/pkg/service/mailer"
	"github.com/robofest-ru/robofest/pkg/service/notify"
	"github.com/robofest-ru/robofest/pkg/utils/async"
)

// RegistrationUseCase runs the public registration pipeline:
// validate, gate check, payload assembly, persist, side effects.
type RegistrationUseCase struct {
	repo     interfaces.Repository
	verifier *captcha.Verifier
	mail     *mailer.Mailer
	notifier *notify.Service
	inFlight atomic.Bool
}

func NewRegistrationUseCase(repo interfaces.Repository, verifier *captcha.Verifier, mail *mailer.Mailer, notifier *notify.Service) *RegistrationUseCase {
	return &RegistrationUseCase{
		repo:     repo,
		verifier: verifier,
		mail:     mail,
		notifier: notifier,
	}
}

// SubmitRequest is one registration attempt, including the captcha token
// reported by the widget (empty when the widget never completed).
type SubmitRequest struct {
	Input        model.RegistrationInput
	CaptchaToken string
	ClientIP     string
}

// Form builds the current registration form: the season's built-in
// fields plus its active dynamic fields in display order. A missing or
// closed season yields a closed form.
func (u *RegistrationUseCase) Form(ctx context.Context) (*model.RegistrationForm, *model.Season, error) {
	season, err := u.repo.Season().GetCurrent(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get current season")
	}

	var fields []*model.RegistrationField
	if season != nil {
		fields, err = u.repo.Field().ListBySeason(ctx, season.ID)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to list registration fields", goerr.V(SeasonIDKey, season.ID))
		}
	}

	return model.NewRegistrationForm(season, fields), season, nil
}

// CaptchaEnabled reports whether submissions must pass the captcha gate
func (u *RegistrationUseCase) CaptchaEnabled() bool {
	return u.verifier.Enabled()
}

// TestCaptcha runs one strict verification round against the remote
// service. Unlike the submission path it surfaces transport failures,
// so an admin can tell a bad secret from an outage.
func (u *RegistrationUseCase) TestCaptcha(ctx context.Context, token, clientIP string) (bool, error) {
	if !u.verifier.Enabled() {
		return false, goerr.Wrap(ErrCaptchaNotConfigured, "nothing to test")
	}
	return u.verifier.VerifyStrict(ctx, token, clientIP)
}

// Submit runs one registration attempt. At most one submission is in
// flight at a time; a concurrent attempt fails fast with
// ErrSubmissionInFlight. Validation strictly precedes persistence, and
// the captcha gate resets after completion whether the attempt succeeded
// or not.
func (u *RegistrationUseCase) Submit(ctx context.Context, req *SubmitRequest) (*model.Team, error) {
	if !u.inFlight.CompareAndSwap(false, true) {
		return nil, goerr.Wrap(ErrSubmissionInFlight, "submission rejected")
	}
	defer u.inFlight.Store(false)

	gate := model.NewCaptchaGate(u.verifier.Enabled())
	if req.CaptchaToken != "" {
		gate.OnVerify(req.CaptchaToken)
	}
	defer gate.Reset()

	season, err := u.repo.Season().GetCurrent(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get current season")
	}
	if season == nil || !season.RegistrationOpen {
		return nil, goerr.Wrap(model.ErrRegistrationClosed, "no open registration")
	}

	descriptors, err := u.repo.Field().ListBySeason(ctx, season.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list registration fields", goerr.V(SeasonIDKey, season.ID))
	}

	form := model.NewRegistrationForm(season, descriptors)
	result := form.Validate(&req.Input)
	if !result.Valid() {
		return nil, goerr.Wrap(model.ErrValidation, "registration input rejected",
			goerr.V(model.FieldErrorsKey, result.Errors))
	}

	token, err := gate.Consume()
	if err != nil {
		return nil, err
	}
	if gate.Enabled() && !u.verifier.Verify(ctx, token, req.ClientIP) {
		return nil, goerr.Wrap(model.ErrCaptchaRequired, "captcha verification failed")
	}

	team := u.assemble(season, form, &req.Input)
	created, err := u.repo.Team().Create(ctx, team)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist registration")
	}

	u.dispatchSideEffects(ctx, created)

	return created, nil
}

// assemble builds the persisted payload. Dynamic values are included
// only when non-empty; when none are present the custom field map stays
// nil so it is omitted from the wire format entirely.
func (u *RegistrationUseCase) assemble(season *model.Season, form *model.RegistrationForm, input *model.RegistrationInput) *model.Team {
	var custom map[string]any
	for _, fld := range form.DynamicFields() {
		value, present := input.CustomFields[fld.Name]
		if !present || isEmptySubmission(value) {
			continue
		}
		if custom == nil {
			custom = make(map[string]any)
		}
		custom[fld.Name] = value
	}

	return &model.Team{
		SeasonID:           season.ID,
		RegistrationNumber: uuid.NewString(),
		Name:               input.TeamName,
		Email:              input.Email,
		Phone:              input.Phone,
		Organization:       input.Organization,
		City:               input.City,
		Region:             input.Region,
		ParticipantsCount:  input.ParticipantsCount,
		League:             input.League,
		RulesAccepted:      input.RulesAccepted,
		Status:             types.TeamStatusPending,
		CustomFields:       custom,
	}
}

func (u *RegistrationUseCase) dispatchSideEffects(ctx context.Context, team *model.Team) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		return u.mail.SendRegistrationConfirmation(ctx, team)
	})
	if u.notifier.Enabled() {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return u.notifier.TeamRegistered(ctx, team)
		})
	}
}

// ListTeams is the admin listing, newest first
func (u *RegistrationUseCase) ListTeams(ctx context.Context, filter interfaces.TeamFilter) ([]*model.Team, error) {
	return u.repo.Team().List(ctx, filter)
}

func (u *RegistrationUseCase) GetTeam(ctx context.Context, id int64) (*model.Team, error) {
	return u.repo.Team().Get(ctx, id)
}

// UpdateTeamStatus moves a registration through review
func (u *RegistrationUseCase) UpdateTeamStatus(ctx context.Context, id int64, status types.TeamStatus, notes string) (*model.Team, error) {
	if !status.IsValid() {
		return nil, goerr.New("invalid team status", goerr.V("status", status))
	}

	team, err := u.repo.Team().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Status = status
	team.Notes = notes

	updated, err := u.repo.Team().Update(ctx, team)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update team status", goerr.V(TeamIDKey, id))
	}
	return updated, nil
}

func (u *RegistrationUseCase) DeleteTeam(ctx context.Context, id int64) error {
	return u.repo.Team().Delete(ctx, id)
}

func isEmptySubmission(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}
