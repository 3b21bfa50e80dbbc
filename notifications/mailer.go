// Package notifications delivers account-verification email. Handlers depend
// on the Mailer interface; delivery failures never fail a request.
package notifications

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer sends the verification link for a freshly registered account.
type Mailer interface {
	SendVerification(email, code string) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	appURL string
}

// NewSMTPMailer creates a mailer for the given SMTP relay.
func NewSMTPMailer(host string, port int, username, password, from, appURL string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		appURL: appURL,
	}
}

func (m *SMTPMailer) SendVerification(email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Verify account")
	msg.SetBody("text/html", fmt.Sprintf(
		`<h1>MovieHub</h1><a href="%s/api/auth/verify?code=%s">verify account</a>`,
		m.appURL, code,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// NoopMailer logs instead of sending, used when SMTP is not configured and in
// tests.
type NoopMailer struct{}

func (NoopMailer) SendVerification(email, code string) error {
	slog.Info("mail delivery disabled, skipping verification mail",
		slog.String("email", email), slog.String("code", code))
	return nil
}
