package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/service/mailer"
	"github.com/robofest-ru/robofest/pkg/service/notify"
	"github.com/robofest-ru/robofest/pkg/utils/async"
)

// ContactUseCase handles the public contact form and its admin inbox
type ContactUseCase struct {
	repo     interfaces.Repository
	mail     *mailer.Mailer
	notifier *notify.Service
}

func NewContactUseCase(repo interfaces.Repository, mail *mailer.Mailer, notifier *notify.Service) *ContactUseCase {
	return &ContactUseCase{
		repo:     repo,
		mail:     mail,
		notifier: notifier,
	}
}

// Submit stores a contact message and dispatches notifications. The
// notifications never fail the submission.
func (u *ContactUseCase) Submit(ctx context.Context, msg *model.ContactMessage) (*model.ContactMessage, error) {
	var result model.ValidationResult
	if msg.Name == "" {
		result.Errors = append(result.Errors, model.FieldError{Field: "name", Message: "field is required"})
	}
	if msg.Email == "" {
		result.Errors = append(result.Errors, model.FieldError{Field: "email", Message: "field is required"})
	}
	if msg.Message == "" {
		result.Errors = append(result.Errors, model.FieldError{Field: "message", Message: "field is required"})
	}
	if !msg.Topic.IsValid() {
		result.Errors = append(result.Errors, model.FieldError{Field: "topic", Message: "unknown topic"})
	}
	if !result.Valid() {
		return nil, goerr.Wrap(model.ErrValidation, "contact input rejected",
			goerr.V(model.FieldErrorsKey, result.Errors))
	}

	created, err := u.repo.Contact().Create(ctx, msg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store contact message")
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return u.mail.SendContactNotification(ctx, created)
	})
	if u.notifier.Enabled() {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return u.notifier.ContactReceived(ctx, created)
		})
	}

	return created, nil
}

func (u *ContactUseCase) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	return u.repo.Contact().Get(ctx, id)
}

func (u *ContactUseCase) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return u.repo.Contact().List(ctx)
}

// MarkRead flags a message as read
func (u *ContactUseCase) MarkRead(ctx context.Context, id int64) (*model.ContactMessage, error) {
	msg, err := u.repo.Contact().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	msg.IsRead = true
	return u.repo.Contact().Update(ctx, msg)
}

// MarkReplied records that an admin answered the message
func (u *ContactUseCase) MarkReplied(ctx context.Context, id, userID int64) (*model.ContactMessage, error) {
	msg, err := u.repo.Contact().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	msg.IsRead = true
	msg.IsReplied = true
	msg.RepliedAt = &now
	msg.RepliedBy = userID
	return u.repo.Contact().Update(ctx, msg)
}

func (u *ContactUseCase) Delete(ctx context.Context, id int64) error {
	return u.repo.Contact().Delete(ctx, id)
}
