package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Mailer sends the outbound notifications the workflows need. Delivery
// failures propagate to the caller; there is no retry.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, resetURL string) error
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPMailer delivers over SMTP via go-mail.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Pass),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, username, resetURL string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set mail to: %w", err)
	}
	msg.Subject("Roleplay: password recovery")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nClick the link below to reset your password:\n\n%s\n", username, resetURL))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// LogMailer is the dev fallback when no SMTP host is configured: it only
// logs the reset link.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, username, resetURL string) error {
	m.Logger.Info("password reset mail (dev mode, not delivered)",
		"to", to,
		"username", username,
		"reset_url", resetURL,
	)
	return nil
}
