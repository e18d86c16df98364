package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/config"
)

type fakeSES struct {
	input *ses.SendRawEmailInput
	err   error
}

func (f *fakeSES) SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func validMessage() Message {
	return Message{
		FromName:  "Workhub",
		FromEmail: "news@workhub.test",
		To:        "ada@example.com",
		Subject:   "Hello",
		HTML:      "<p>Hi</p>",
	}
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := NewSESMailer(client)
	require.True(t, m.Configured())

	msg := validMessage()
	msg.Headers = map[string]string{"X-Campaign-ID": "c1", "X-Tracking-ID": "t1"}
	require.NoError(t, m.Send(context.Background(), msg))
	require.NotNil(t, client.input)
	assert.Equal(t, `"Workhub" <news@workhub.test>`, aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ada@example.com"}, client.input.Destinations)

	raw := string(client.input.RawMessage.Data)
	assert.Contains(t, raw, "Subject: Hello\r\n")
	assert.Contains(t, raw, "X-Campaign-ID: c1\r\n")
	assert.Contains(t, raw, "X-Tracking-ID: t1\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>Hi</p>"))
}

func TestSESMailer_SendError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	err := NewSESMailer(client).Send(context.Background(), validMessage())
	assert.ErrorContains(t, err, "throttled")
}

func TestSESMailer_InvalidRecipient(t *testing.T) {
	msg := validMessage()
	msg.To = "not-an-address"
	err := NewSESMailer(&fakeSES{}).Send(context.Background(), msg)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestSMTPMailer_Send(t *testing.T) {
	var gotAddr string
	var gotTo []string
	var gotBody string

	m := &smtpMailer{
		cfg: config.SMTPConfig{Host: "smtp.workhub.test", Port: 2525},
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr = addr
			gotTo = to
			gotBody = string(msg)
			return nil
		},
	}

	msg := validMessage()
	msg.Headers = map[string]string{"X-Campaign-ID": "c1"}
	require.NoError(t, m.Send(context.Background(), msg))

	assert.Equal(t, "smtp.workhub.test:2525", gotAddr)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Subject: Hello\r\n")
	assert.Contains(t, gotBody, "X-Campaign-ID: c1\r\n")
	assert.True(t, strings.HasSuffix(gotBody, "\r\n\r\n<p>Hi</p>"))
}

func TestBuildMIME_EncodesNonASCIISubject(t *testing.T) {
	msg := validMessage()
	msg.Subject = "Olá équipe"

	raw := string(buildMIME(msg))

	assert.Contains(t, raw, "Subject: =?UTF-8?q?Ol=C3=A1_=C3=A9quipe?=\r\n")
}

func TestMessage_ValidateRejectsHeaderInjection(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Message)
	}{
		{"subject with crlf", func(m *Message) { m.Subject = "Hi\r\nBcc: all@example.com" }},
		{"subject with lf", func(m *Message) { m.Subject = "Hi\nthere" }},
		{"sender name with cr", func(m *Message) { m.FromName = "HR\rTeam" }},
		{"header value with crlf", func(m *Message) { m.Headers = map[string]string{"X-Tracking-ID": "t1\r\nBcc: x@example.com"} }},
		{"header name with colon", func(m *Message) { m.Headers = map[string]string{"X-Bad:": "1"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validMessage()
			tt.modify(&msg)

			assert.ErrorIs(t, msg.Validate(), ErrInvalidMessage)
			assert.ErrorIs(t, NewSESMailer(&fakeSES{}).Send(context.Background(), msg), ErrInvalidMessage)
		})
	}
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{})
	assert.False(t, m.Configured())
	assert.ErrorIs(t, m.Send(context.Background(), validMessage()), ErrNotConfigured)
}

func TestDisabled(t *testing.T) {
	var m Mailer = Disabled{}
	assert.False(t, m.Configured())
	assert.ErrorIs(t, m.Send(context.Background(), validMessage()), ErrNotConfigured)
}
