package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	mail "github.com/go-mail/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSMTPSender(t *testing.T, mode string) *SMTPSender {
	t.Helper()

	s, err := NewSMTPSender(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     `"Bidoro" <hello@bidoro.africa>`,
		TLSMode:  mode,
	})
	require.NoError(t, err)
	return s
}

func TestNewSMTPSender_Validation(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Port: 587, From: "a@b.c"})
	assert.Error(t, err)

	_, err = NewSMTPSender(SMTPConfig{Host: "h", Port: 0, From: "a@b.c"})
	assert.Error(t, err)

	_, err = NewSMTPSender(SMTPConfig{Host: "h", Port: 25})
	assert.Error(t, err)

	_, err = NewSMTPSender(SMTPConfig{Host: "h", Port: 25, From: "a@b.c", TLSMode: "tls13-only"})
	assert.Error(t, err)

	s, err := NewSMTPSender(SMTPConfig{Host: "h", Port: 25, From: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, TLSModeStartTLS, s.cfg.TLSMode)
	assert.Equal(t, ProviderSMTP, s.Provider())
}

func TestSMTPSender_Send_BuildsMessageAndReturnsID(t *testing.T) {
	s := newTestSMTPSender(t, TLSModeStartTLS)

	var captured *mail.Message
	var dialer *mail.Dialer
	s.send = func(d *mail.Dialer, m ...*mail.Message) error {
		dialer = d
		captured = m[0]
		return nil
	}

	id, err := s.Send(context.Background(), "jane@example.com", "Welcome", "<p>hi</p>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@bidoro.africa>"))

	require.NotNil(t, captured)
	assert.Equal(t, []string{"jane@example.com"}, captured.GetHeader("To"))
	assert.Equal(t, []string{"Welcome"}, captured.GetHeader("Subject"))
	assert.Equal(t, []string{id}, captured.GetHeader("Message-Id"))

	require.NotNil(t, dialer)
	assert.Equal(t, "smtp.example.com", dialer.Host)
	assert.Equal(t, 587, dialer.Port)
	assert.False(t, dialer.SSL)
}

func TestSMTPSender_Send_SSLMode(t *testing.T) {
	s := newTestSMTPSender(t, TLSModeSSL)

	var dialer *mail.Dialer
	s.send = func(d *mail.Dialer, _ ...*mail.Message) error {
		dialer = d
		return nil
	}

	_, err := s.Send(context.Background(), "jane@example.com", "Welcome", "<p>hi</p>")
	require.NoError(t, err)
	assert.True(t, dialer.SSL)
}

func TestSMTPSender_Send_WrapsRelayError(t *testing.T) {
	s := newTestSMTPSender(t, TLSModeStartTLS)
	relayErr := errors.New("535 authentication failed")
	s.send = func(*mail.Dialer, ...*mail.Message) error { return relayErr }

	id, err := s.Send(context.Background(), "jane@example.com", "Welcome", "<p>hi</p>")
	assert.Empty(t, id)
	assert.ErrorIs(t, err, relayErr)
}

func TestSMTPSender_Send_RejectsInvalidRecipient(t *testing.T) {
	s := newTestSMTPSender(t, TLSModeStartTLS)
	s.send = func(*mail.Dialer, ...*mail.Message) error {
		t.Fatal("relay must not be contacted")
		return nil
	}

	_, err := s.Send(context.Background(), "not an address", "Welcome", "<p>hi</p>")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestSenderDomain(t *testing.T) {
	assert.Equal(t, "bidoro.africa", senderDomain(`"Bidoro" <hello@bidoro.africa>`))
	assert.Equal(t, "example.com", senderDomain("ops@example.com"))
	assert.Equal(t, "localhost", senderDomain("nobody"))
}

func TestNewMailgunSender_Validation(t *testing.T) {
	_, err := NewMailgunSender(MailgunConfig{APIKey: "key", From: "a@b.c"})
	assert.Error(t, err)

	_, err = NewMailgunSender(MailgunConfig{Domain: "mg.example.com", From: "a@b.c"})
	assert.Error(t, err)

	s, err := NewMailgunSender(MailgunConfig{Domain: "mg.example.com", APIKey: "key", From: "a@b.c", EU: true})
	require.NoError(t, err)
	assert.Equal(t, ProviderMailgun, s.Provider())
}
