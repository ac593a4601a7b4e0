// Package mailer delivers notifications by email.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
	"github.com/msaadaplus/msaada_backend/internal/platform/config"
	"github.com/wneessen/go-mail"
)

// SMTPNotifier sends plain-text emails through an authenticated SMTP relay using STARTTLS.
type SMTPNotifier struct {
	cfg config.MailConfig
}

var _ clients.Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier creates an SMTP notifier.
func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send delivers n. One connection is opened per message.
func (s *SMTPNotifier) Send(ctx context.Context, n clients.Notification) error {
	msg, err := buildMessage(s.cfg.From, n)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to send email",
			slog.String("subject", n.Subject), slog.String("error", err.Error()))
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from string, n clients.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(mail.TypeTextPlain, n.Body)
	return msg, nil
}

// LogNotifier writes notifications to the request logger instead of sending them.
// It is used when no SMTP account is configured.
type LogNotifier struct{}

var _ clients.Notifier = LogNotifier{}

// Send logs n.
func (LogNotifier) Send(ctx context.Context, n clients.Notification) error {
	middleware.GetLoggerFromCtx(ctx).Info("Email delivery disabled, notification logged",
		slog.String("to", n.To), slog.String("subject", n.Subject), slog.String("body", n.Body))
	return nil
}

// New returns an SMTP notifier, or a LogNotifier when cfg has no credentials.
func New(cfg config.MailConfig) clients.Notifier {
	if cfg.Username == "" || cfg.Host == "" {
		return LogNotifier{}
	}
	return NewSMTPNotifier(cfg)
}
