package domain

import (
	"github.com/bidoro/waitlist-api/config"
	"github.com/bidoro/waitlist-api/domain/monitoring"
	"github.com/bidoro/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	confirmation := NewConfirmationMailer(appConfig)

	appConfig.RouterService.MountController(
		monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, appConfig.Sender).CreateController(),
	)
	appConfig.RouterService.MountController(
		waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, confirmation).CreateController(),
	)
}

// NewConfirmationMailer binds the configured sender (possibly nil) to the
// email content settings.
func NewConfirmationMailer(appConfig *config.ApplicationConfig) *waitlist.ConfirmationMailer {
	settings := waitlist.EmailSettings{}
	if content := appConfig.EmailContent; content != nil {
		settings = waitlist.EmailSettings{
			Subject:      content.Subject,
			ProductName:  content.ProductName,
			SiteURL:      content.SiteURL,
			SupportEmail: content.SupportEmail,
		}
	}

	return waitlist.NewConfirmationMailer(appConfig.Sender, settings)
}
