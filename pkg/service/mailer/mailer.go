package mailer

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	gomail "github.com/wneessen/go-mail"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

// Mailer sends transactional mail over SMTP. A mailer without SMTP
// credentials is valid and silently skips sends, which keeps local
// development working without a mail server.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	adminTo  string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AdminTo  string
}

func New(cfg Config) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		adminTo:  cfg.AdminTo,
	}
}

// Enabled reports whether SMTP credentials are configured
func (m *Mailer) Enabled() bool {
	return m.username != "" && m.password != ""
}

func (m *Mailer) send(ctx context.Context, to, subject, body, html string) error {
	if !m.Enabled() {
		logging.From(ctx).Warn("mail not configured, skipping send", "subject", subject)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return goerr.Wrap(err, "invalid from address", goerr.V("from", m.from))
	}
	if err := msg.To(to); err != nil {
		return goerr.Wrap(err, "invalid recipient address", goerr.V("to", to))
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	if html != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, html)
	}

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.username),
		gomail.WithPassword(m.password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to send mail", goerr.V("to", to), goerr.V("subject", subject))
	}

	logging.From(ctx).Info("mail sent", "to", to, "subject", subject)
	return nil
}

// SendRegistrationConfirmation notifies a team that their registration
// was received.
func (m *Mailer) SendRegistrationConfirmation(ctx context.Context, team *model.Team) error {
	subject := fmt.Sprintf("Регистрация команды %s - RoboFest", team.Name)
	body := fmt.Sprintf(`Здравствуйте!

Ваша команда "%s" успешно зарегистрирована на соревнования RoboFest.
Номер вашей заявки: %s

Мы свяжемся с вами для подтверждения участия.

С уважением,
Команда RoboFest`, team.Name, team.RegistrationNumber)

	html := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Регистрация команды %s</h2>
  <p>Здравствуйте!</p>
  <p>Ваша команда <strong>"%s"</strong> успешно зарегистрирована на соревнования RoboFest.</p>
  <p>Номер вашей заявки: <strong>%s</strong></p>
  <p>Мы свяжемся с вами для подтверждения участия.</p>
  <hr>
  <p>С уважением,<br>Команда RoboFest</p>
</body>
</html>`, team.Name, team.Name, team.RegistrationNumber)

	return m.send(ctx, team.Email, subject, body, html)
}

// SendContactNotification forwards a contact form submission to the
// configured admin address.
func (m *Mailer) SendContactNotification(ctx context.Context, msg *model.ContactMessage) error {
	if m.adminTo == "" {
		logging.From(ctx).Warn("admin mail address not configured, skipping contact notification")
		return nil
	}

	subject := fmt.Sprintf("Новое сообщение: %s", msg.Topic)
	body := fmt.Sprintf(`Новое сообщение с сайта.

От: %s <%s>
Тема: %s

%s`, msg.Name, msg.Email, msg.Topic, msg.Message)

	return m.send(ctx, m.adminTo, subject, body, "")
}
