package notify

import (
	"context"
	"fmt"

	"github.com/newswire-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional mail. Delivery is best effort; callers never
// fail a request on a mail error.
type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}

// sendGridMailer delivers through SendGrid
type sendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
	log       zerolog.Logger
}

// NewMailer creates a SendGrid-backed mailer when an API key is configured
// and a no-op mailer otherwise
func NewMailer(cfg *config.MailConfig, log zerolog.Logger) Mailer {
	l := log.With().Str("component", "mailer").Logger()
	if cfg.SendGridAPIKey == "" {
		l.Info().Msg("SENDGRID_API_KEY not set, mail disabled")
		return &nopMailer{}
	}
	return &sendGridMailer{
		apiKey:    cfg.SendGridAPIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       l,
	}
}

// Send delivers one plain-text message
func (m *sendGridMailer) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	m.log.Info().Str("to", toEmail).Str("subject", subject).Msg("Mail sent")
	return nil
}

type nopMailer struct{}

func (*nopMailer) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	return nil
}
