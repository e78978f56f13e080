// Package mailer delivers transactional email through SMTP or the Mailgun API.
package mailer

//go:generate mockgen -source=sender.go -destination=mock_sender.go -package=mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const (
	ProviderSMTP    = "smtp"
	ProviderMailgun = "mailgun"
)

// Sender delivers a single HTML message and returns the provider's message ID.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) (string, error)
	Provider() string
}

var ErrInvalidRecipient = errors.New("mailer: invalid recipient address")

func validateRecipient(to string) error {
	if strings.TrimSpace(to) == "" {
		return ErrInvalidRecipient
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	return nil
}

// senderDomain extracts the domain of a From header such as `"Acme" <hello@acme.io>`.
func senderDomain(from string) string {
	addr := from
	if parsed, err := mail.ParseAddress(from); err == nil {
		addr = parsed.Address
	}

	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return "localhost"
	}
	return strings.TrimSuffix(addr[at+1:], ">")
}
