package usecase

import (
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/service/captcha"
	"github.com/robofest-ru/robofest/pkg/service/mailer"
	"github.com/robofest-ru/robofest/pkg/service/notify"
)

// UseCases bundles every application operation over one repository
type UseCases struct {
	repo       interfaces.Repository
	verifier   *captcha.Verifier
	mail       *mailer.Mailer
	notifier   *notify.Service
	location   *time.Location
	authSecret []byte
	vkFactory  VKClientFactory
	mediaStore ObjectStore

	Registration *RegistrationUseCase
	Season       *SeasonUseCase
	News         *NewsUseCase
	Contact      *ContactUseCase
	Partner      *PartnerUseCase
	Auth         *AuthUseCase
	VKImport     *VKImportUseCase
	Dashboard    *DashboardUseCase
	Media        *MediaUseCase
}

type Option func(*UseCases)

// WithCaptcha wires the remote captcha verifier. Without it the gate is
// disabled and every submission passes.
func WithCaptcha(v *captcha.Verifier) Option {
	return func(uc *UseCases) {
		uc.verifier = v
	}
}

// WithMailer wires SMTP notifications
func WithMailer(m *mailer.Mailer) Option {
	return func(uc *UseCases) {
		uc.mail = m
	}
}

// WithNotifier wires Slack notifications
func WithNotifier(n *notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithLocation sets the display timezone used for schedule parsing and
// VK post dates. Defaults to Europe/Moscow.
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.location = loc
	}
}

// WithAuthSecret configures JWT signing. Without it the Auth use case is
// nil and the admin API cannot be served.
func WithAuthSecret(secret []byte) Option {
	return func(uc *UseCases) {
		uc.authSecret = secret
	}
}

// WithMediaStore wires the object store backing admin media uploads.
// Without it the Media use case is nil and the upload endpoint is
// disabled.
func WithMediaStore(store ObjectStore) Option {
	return func(uc *UseCases) {
		uc.mediaStore = store
	}
}

// WithVKClientFactory overrides how VK API clients are constructed,
// mainly for tests.
func WithVKClientFactory(factory VKClientFactory) Option {
	return func(uc *UseCases) {
		uc.vkFactory = factory
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		location: defaultLocation(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.verifier == nil {
		uc.verifier = captcha.New("")
	}
	if uc.mail == nil {
		uc.mail = mailer.New(mailer.Config{})
	}

	uc.Registration = NewRegistrationUseCase(uc.repo, uc.verifier, uc.mail, uc.notifier)
	uc.Season = NewSeasonUseCase(uc.repo)
	uc.News = NewNewsUseCase(uc.repo, uc.location)
	uc.Contact = NewContactUseCase(uc.repo, uc.mail, uc.notifier)
	uc.Partner = NewPartnerUseCase(uc.repo)
	uc.Dashboard = NewDashboardUseCase(uc.repo)
	uc.VKImport = NewVKImportUseCase(uc.repo, uc.vkFactory, uc.location)
	if len(uc.authSecret) > 0 {
		uc.Auth = NewAuthUseCase(uc.repo, uc.authSecret)
	}
	if uc.mediaStore != nil {
		uc.Media = NewMediaUseCase(uc.mediaStore)
	}

	return uc
}

// defaultLocation is the organization's display timezone. Falls back to
// UTC when tzdata is unavailable.
func defaultLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.UTC
	}
	return loc
}
