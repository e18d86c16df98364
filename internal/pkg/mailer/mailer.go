package mailer

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"sort"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/config"
)

var (
	ErrNotConfigured  = errors.New("mail transport is not configured")
	ErrInvalidMessage = errors.New("invalid mail message")
)

// Message is one rendered e-mail addressed to a single recipient.
type Message struct {
	FromName  string
	FromEmail string
	To        string
	Subject   string
	HTML      string
	Headers   map[string]string
}

func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.FromEmail); err != nil {
		return fmt.Errorf("%w: from %q: %v", ErrInvalidMessage, m.FromEmail, err)
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: to %q: %v", ErrInvalidMessage, m.To, err)
	}
	if hasLineBreak(m.Subject) || hasLineBreak(m.FromName) {
		return fmt.Errorf("%w: line break in subject or sender name", ErrInvalidMessage)
	}
	for k, v := range m.Headers {
		if k == "" || hasLineBreak(k) || strings.Contains(k, ":") || hasLineBreak(v) {
			return fmt.Errorf("%w: header %q", ErrInvalidMessage, k)
		}
	}
	return nil
}

func hasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}

// From formats the sender as an RFC 5322 address.
func (m Message) From() string {
	return (&mail.Address{Name: m.FromName, Address: m.FromEmail}).String()
}

// buildMIME renders msg as an HTML message with RFC 2047 encoded subject.
func buildMIME(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From())
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, msg.Headers[k])
	}

	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// Mailer delivers messages through an external transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	// Configured reports whether the transport has the credentials it needs.
	Configured() bool
}

// New builds the mailer selected by cfg.Mail.Driver.
func New(ctx context.Context, cfg *config.Config) (Mailer, error) {
	switch cfg.Mail.Driver {
	case "ses":
		opts := []func(*awsconfig.LoadOptions) error{}
		if cfg.Mail.SESRegion != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Mail.SESRegion))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return NewSESMailer(ses.NewFromConfig(awsCfg)), nil
	case "smtp":
		return NewSMTPMailer(cfg.SMTP), nil
	default:
		return Disabled{}, nil
	}
}

// Disabled is used when no transport is configured.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error { return ErrNotConfigured }

func (Disabled) Configured() bool { return false }
