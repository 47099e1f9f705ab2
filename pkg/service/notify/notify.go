package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// Service posts back-office notifications to a Slack channel. The zero
// value is a disabled notifier that drops every message, so callers do
// not need to branch on configuration.
type Service struct {
	api     *slack.Client
	channel string
}

// New creates a notifier posting to the given channel. An empty token
// returns an error.
func New(token, channel string) (*Service, error) {
	if token == "" {
		return nil, goerr.New("slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("slack channel is required")
	}

	return &Service{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

// Enabled reports whether the notifier is configured
func (s *Service) Enabled() bool {
	return s != nil && s.api != nil
}

func (s *Service) post(ctx context.Context, blocks []slack.Block, fallback string) error {
	if !s.Enabled() {
		return nil
	}

	_, _, err := s.api.PostMessageContext(ctx, s.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fallback, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post slack message", goerr.V("channel", s.channel))
	}
	return nil
}

// TeamRegistered announces a new team registration
func (s *Service) TeamRegistered(ctx context.Context, team *model.Team) error {
	fallback := fmt.Sprintf("New team registered: %s", team.Name)
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "New team registration", false, false)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Team:*\n%s", team.Name), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*League:*\n%s", team.League), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Participants:*\n%d", team.ParticipantsCount), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Email:*\n%s", team.Email), false, false),
		}, nil),
	}
	return s.post(ctx, blocks, fallback)
}

// ContactReceived announces a new contact form submission
func (s *Service) ContactReceived(ctx context.Context, msg *model.ContactMessage) error {
	fallback := fmt.Sprintf("New contact message from %s", msg.Name)
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "New contact message", false, false)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*From:*\n%s <%s>", msg.Name, msg.Email), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Topic:*\n%s", msg.Topic), false, false),
		}, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, msg.Message, false, false), nil, nil),
	}
	return s.post(ctx, blocks, fallback)
}
