package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer sends invite mails. Delivery is fire-and-forget from the core's
// point of view: callers log failures and move on.
type Mailer interface {
	SendInvite(ctx context.Context, email, displayName string) error
}

type SMTPMailer struct {
	client *gomail.Client
	from   string
	appURL string
}

func NewSMTPMailer(host string, port int, username, password, from, appURL string) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   from,
		appURL: appURL,
	}, nil
}

func (m *SMTPMailer) SendInvite(ctx context.Context, email, displayName string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(email); err != nil {
		return err
	}

	msg.Subject("You have been invited to a timesheet workspace")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\n\n"+
			"You have been added to a company workspace. Sign in at %s with this "+
			"email address to start tracking your time.\n",
		displayName, m.appURL,
	))

	return m.client.DialAndSendWithContext(ctx, msg)
}

// LogMailer stands in when no SMTP host is configured (local development).
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger.Named("mail.log")}
}

func (m *LogMailer) SendInvite(ctx context.Context, email, displayName string) error {
	m.logger.Info("invite mail (not sent, no SMTP configured)",
		zap.String("email", email),
		zap.String("display_name", displayName),
	)
	return nil
}
