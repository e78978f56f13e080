package waitlist

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/aymerick/raymond"
	"github.com/bidoro/waitlist-api/internal/models"
	apperrors "github.com/bidoro/waitlist-api/pkg/errors"
	"github.com/bidoro/waitlist-api/pkg/mailer"
)

const DefaultConfirmationSubject = "Welcome to the Bidoro Waitlist! 🚀"

//go:embed templates/confirmation.hbs
var confirmationTemplateSource string

var confirmationTemplate = raymond.MustParse(confirmationTemplateSource)

type EmailSettings struct {
	Subject      string
	ProductName  string
	SiteURL      string
	SupportEmail string
}

// ConfirmationMailer renders and sends the "you're on the list" email.
// A nil *ConfirmationMailer or one without a sender is valid and disabled.
type ConfirmationMailer struct {
	sender   mailer.Sender
	settings EmailSettings
}

func NewConfirmationMailer(sender mailer.Sender, settings EmailSettings) *ConfirmationMailer {
	if settings.Subject == "" {
		settings.Subject = DefaultConfirmationSubject
	}
	if settings.ProductName == "" {
		settings.ProductName = "Bidoro"
	}

	return &ConfirmationMailer{sender: sender, settings: settings}
}

func (m *ConfirmationMailer) Enabled() bool {
	return m != nil && m.sender != nil
}

func (m *ConfirmationMailer) Provider() string {
	if !m.Enabled() {
		return ""
	}
	return m.sender.Provider()
}

func (m *ConfirmationMailer) Render(entry *models.WaitlistEntry) (string, error) {
	data := map[string]interface{}{
		"productName":  m.settings.ProductName,
		"siteURL":      m.settings.SiteURL,
		"supportEmail": m.settings.SupportEmail,
		"year":         entry.CreatedAt.Year(),
	}
	if entry.Name != nil {
		data["name"] = *entry.Name
	}
	if entry.WhatsappNumber != nil {
		data["whatsappNumber"] = *entry.WhatsappNumber
	}

	html, err := confirmationTemplate.Exec(data)
	if err != nil {
		return "", fmt.Errorf("render confirmation email: %w", err)
	}
	return html, nil
}

// Send delivers the confirmation for entry and returns the provider message ID.
// Every failure is a NOTIFICATION_ERROR.
func (m *ConfirmationMailer) Send(ctx context.Context, entry *models.WaitlistEntry) (string, error) {
	if !m.Enabled() {
		return "", apperrors.NewNotificationError("no mail sender configured", nil)
	}

	html, err := m.Render(entry)
	if err != nil {
		return "", apperrors.NewNotificationError("unable to render confirmation email", err)
	}

	messageID, err := m.sender.Send(ctx, entry.Email, m.settings.Subject, html)
	if err != nil {
		return "", apperrors.NewNotificationError("unable to send confirmation email", err)
	}

	return messageID, nil
}
