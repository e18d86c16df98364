package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used for delivery.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

type sesMailer struct {
	client SESAPI
}

// NewSESMailer sends raw MIME so custom headers reach the recipient.
func NewSESMailer(client SESAPI) Mailer {
	return &sesMailer{client: client}
}

func (s *sesMailer) Configured() bool {
	return s.client != nil
}

func (s *sesMailer) Send(ctx context.Context, msg Message) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	out, err := s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(msg.From()),
		Destinations: []string{msg.To},
		RawMessage: &types.RawMessage{
			Data: buildMIME(msg),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email via ses: %w", err)
	}

	slog.Debug("Email sent via SES", "to", msg.To, "message_id", aws.ToString(out.MessageId))
	return nil
}
