package config

import (
	"fmt"
	"strings"

	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/pkg/constants"
	"github.com/bidoro/waitlist-api/pkg/mailer"
	"github.com/bidoro/waitlist-api/pkg/utils"
)

type MailerConfig struct {
	Provider string
	From     string

	SMTP    mailer.SMTPConfig
	Mailgun mailer.MailgunConfig
}

// EmailContentConfig feeds the confirmation email template.
type EmailContentConfig struct {
	Subject      string
	ProductName  string
	SiteURL      string
	SupportEmail string
}

func NewMailerConfig() *MailerConfig {
	from := sanitizeEnv(utils.GetEnvTrimmed("MAIL_FROM"))

	return &MailerConfig{
		Provider: strings.ToLower(utils.GetEnvTrimmedOrDefault("MAIL_PROVIDER", mailer.ProviderSMTP)),
		From:     from,
		SMTP: mailer.SMTPConfig{
			Host:               utils.GetEnvTrimmed("SMTP_HOST"),
			Port:               utils.GetEnvPositiveInt("SMTP_PORT", constants.DefaultSMTPPort),
			Username:           utils.GetEnvTrimmed("SMTP_USERNAME"),
			Password:           sanitizeEnv(GetValueFromEnvironmentVariable("SMTP_PASSWORD", "")),
			From:               from,
			TLSMode:            strings.ToLower(utils.GetEnvTrimmedOrDefault("SMTP_TLS_MODE", mailer.TLSModeStartTLS)),
			InsecureSkipVerify: utils.GetEnvBool("SMTP_INSECURE_SKIP_VERIFY", false),
		},
		Mailgun: mailer.MailgunConfig{
			Domain: utils.GetEnvTrimmed("MAILGUN_DOMAIN"),
			APIKey: sanitizeEnv(utils.GetEnvTrimmed("MAILGUN_API_KEY")),
			From:   from,
			EU:     utils.GetEnvBool("MAILGUN_EU", false),
		},
	}
}

func NewEmailContentConfig() *EmailContentConfig {
	return &EmailContentConfig{
		Subject:      utils.GetEnvTrimmed("WAITLIST_EMAIL_SUBJECT"),
		ProductName:  utils.GetEnvTrimmed("WAITLIST_PRODUCT_NAME"),
		SiteURL:      utils.GetEnvTrimmed("WAITLIST_SITE_URL"),
		SupportEmail: utils.GetEnvTrimmed("WAITLIST_SUPPORT_EMAIL"),
	}
}

// NewSenderOrNil returns (nil, nil) when the selected provider has no
// credentials, so the service can run without sending confirmations.
// A provider that is configured but invalid is an error.
func (mc *MailerConfig) NewSenderOrNil(logger *log.Logger) (mailer.Sender, error) {
	switch mc.Provider {
	case mailer.ProviderSMTP:
		if mc.SMTP.Host == "" {
			logger.Warn("SMTP_HOST not set; confirmation emails are disabled")
			return nil, nil
		}

		sender, err := mailer.NewSMTPSender(mc.SMTP)
		if err != nil {
			return nil, fmt.Errorf("configure smtp sender: %w", err)
		}

		logger.Info("Mail sender configured",
			"provider", mailer.ProviderSMTP,
			"host", mc.SMTP.Host,
			"port", mc.SMTP.Port,
			"tls_mode", mc.SMTP.TLSMode,
		)
		return sender, nil

	case mailer.ProviderMailgun:
		if mc.Mailgun.Domain == "" && mc.Mailgun.APIKey == "" {
			logger.Warn("MAILGUN_DOMAIN and MAILGUN_API_KEY not set; confirmation emails are disabled")
			return nil, nil
		}

		sender, err := mailer.NewMailgunSender(mc.Mailgun)
		if err != nil {
			return nil, fmt.Errorf("configure mailgun sender: %w", err)
		}

		logger.Info("Mail sender configured",
			"provider", mailer.ProviderMailgun,
			"domain", mc.Mailgun.Domain,
			"eu", mc.Mailgun.EU,
		)
		return sender, nil

	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q (allowed: %s, %s)", mc.Provider, mailer.ProviderSMTP, mailer.ProviderMailgun)
	}
}
