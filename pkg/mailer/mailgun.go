package mailer

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

type MailgunConfig struct {
	Domain string
	APIKey string
	From   string
	EU     bool
}

// MailgunSender sends mail through the Mailgun HTTP API.
type MailgunSender struct {
	from   string
	client *mailgun.MailgunImpl
}

func NewMailgunSender(cfg MailgunConfig) (*MailgunSender, error) {
	if cfg.Domain == "" {
		return nil, fmt.Errorf("mailer: MAILGUN_DOMAIN is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mailer: MAILGUN_API_KEY is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mailer: from address is required")
	}

	client := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.EU {
		client.SetAPIBase(mailgun.APIBaseEU)
	}

	return &MailgunSender{from: cfg.From, client: client}, nil
}

func (s *MailgunSender) Provider() string {
	return ProviderMailgun
}

func (s *MailgunSender) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	if err := validateRecipient(to); err != nil {
		return "", err
	}

	message := s.client.NewMessage(s.from, subject, "", to)
	message.SetHtml(htmlBody)

	_, messageID, err := s.client.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}

	return messageID, nil
}
