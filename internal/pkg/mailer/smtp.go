package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/config"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	cfg      config.SMTPConfig
	sendMail sendMailFunc
}

// NewSMTPMailer sends through a plain-auth SMTP relay.
func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *smtpMailer) Configured() bool {
	return s.cfg.Host != ""
}

func (s *smtpMailer) Send(ctx context.Context, msg Message) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := s.sendMail(addr, auth, msg.FromEmail, []string{msg.To}, buildMIME(msg)); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}
