package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/platform/config"
)

// smtpMailer delivers rendered reports over SMTP.
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates the SMTP-backed mail dispatcher. Returns nil when
// no SMTP host is configured, which disables report delivery.
func NewSMTPMailer(cfg *config.Config) portssvc.Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

// Send delivers one HTML message, honouring context cancellation. gomail
// dials synchronously, so the send runs in a goroutine and the first of
// completion or cancellation wins.
func (m *smtpMailer) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail to %s: %w", to, err)
		}
		return nil
	}
}
