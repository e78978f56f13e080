package mailer

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail"
	"github.com/google/uuid"
)

const (
	TLSModeStartTLS = "starttls"
	TLSModeSSL      = "ssl"
	TLSModeNone     = "none"
)

type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	From               string
	TLSMode            string // "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
}

// SMTPSender sends mail through an SMTP relay. The Message-Id header is
// generated locally because SMTP gives nothing back on acceptance.
type SMTPSender struct {
	cfg  SMTPConfig
	send func(d *mail.Dialer, m ...*mail.Message) error
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer: SMTP host is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("mailer: invalid SMTP port %d", cfg.Port)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mailer: from address is required")
	}
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSModeStartTLS
	}

	switch cfg.TLSMode {
	case TLSModeStartTLS, TLSModeSSL, TLSModeNone:
	default:
		return nil, fmt.Errorf("mailer: unsupported SMTP TLS mode %q", cfg.TLSMode)
	}

	return &SMTPSender{
		cfg:  cfg,
		send: (*mail.Dialer).DialAndSend,
	}, nil
}

func (s *SMTPSender) Provider() string {
	return ProviderSMTP
}

// Send blocks until the relay accepts or rejects the message. go-mail has no
// context support, so ctx is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	if err := validateRecipient(to); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), senderDomain(s.cfg.From))
	m := s.buildMessage(to, subject, htmlBody, messageID)

	if err := s.send(s.dialer(), m); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	return messageID, nil
}

func (s *SMTPSender) buildMessage(to, subject, htmlBody, messageID string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-Id", messageID)
	m.SetBody("text/html", htmlBody)
	return m
}

func (s *SMTPSender) dialer() *mail.Dialer {
	d := mail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	d.TLSConfig = &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.InsecureSkipVerify,
	}

	switch s.cfg.TLSMode {
	case TLSModeSSL:
		d.SSL = true
	case TLSModeNone:
		d.TLSConfig = &tls.Config{InsecureSkipVerify: s.cfg.InsecureSkipVerify}
	}

	return d
}
