package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/bidoro/waitlist-api/config"
	"github.com/bidoro/waitlist-api/domain"
	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSendTestEmailCommand(logger *log.Logger) *cobra.Command {
	var name, whatsapp string

	cmd := &cobra.Command{
		Use:   "send-test-email <to>",
		Short: "Render the confirmation email and send it with the configured provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := config.NewMailerConfig().NewSenderOrNil(logger)
			if err != nil {
				return err
			}
			if sender == nil {
				return errors.New("no mail provider configured; set SMTP_HOST or MAIL_PROVIDER=mailgun")
			}

			confirmation := domain.NewConfirmationMailer(&config.ApplicationConfig{
				Sender:       sender,
				EmailContent: config.NewEmailContentConfig(),
			})

			entry := &models.WaitlistEntry{
				ID:             uuid.NewString(),
				Email:          args[0],
				ReferralSource: "cli",
				CreatedAt:      time.Now().UTC(),
			}
			if name != "" {
				entry.Name = &name
			}
			if whatsapp != "" {
				entry.WhatsappNumber = &whatsapp
			}

			messageID, err := confirmation.Send(cmd.Context(), entry)
			if err != nil {
				logger.Error("Test email failed", "provider", sender.Provider(), "error", err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent via %s, message id %s\n", sender.Provider(), messageID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name used in the greeting")
	cmd.Flags().StringVar(&whatsapp, "whatsapp", "", "show the WhatsApp block with this number")

	return cmd
}
