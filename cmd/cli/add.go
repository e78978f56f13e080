package main

import (
	"fmt"

	"github.com/bidoro/waitlist-api/config"
	"github.com/bidoro/waitlist-api/domain"
	"github.com/bidoro/waitlist-api/domain/waitlist"
	"github.com/bidoro/waitlist-api/internal/log"
	apperrors "github.com/bidoro/waitlist-api/pkg/errors"
	"github.com/spf13/cobra"
)

// newAddCommand inserts directly against the database, for imports from
// other channels while the API is down. Same validation and confirmation.
func newAddCommand(logger *log.Logger) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "add <email> [name] [whatsapp]",
		Short: "Add a signup directly to the database (bypasses the HTTP API)",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := config.NewMailerConfig().NewSenderOrNil(logger)
			if err != nil {
				return err
			}

			db, err := config.NewDatabase(logger, nil)
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db, logger)

			confirmation := domain.NewConfirmationMailer(&config.ApplicationConfig{
				Sender:       sender,
				EmailContent: config.NewEmailContentConfig(),
			})
			service := waitlist.NewWaitlistServiceFactory(db, logger, confirmation).CreateService()

			submission := submissionFromArgs(args)
			req := &waitlist.JoinWaitlistRequest{
				Email:          submission.Email,
				Name:           submission.Name,
				WhatsappNumber: submission.WhatsappNumber,
			}
			if source != "" {
				req.ReferralSource = &source
			}

			response, err := service.JoinWaitlist(cmd.Context(), req)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), apperrors.GetHumanReadableMessage(err))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), waitlist.MsgJoined)
			fmt.Fprintf(cmd.OutOrStdout(), "id=%s email=%s source=%s\n", response.ID, response.Email, response.ReferralSource)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "import", "referral source recorded with the signup")

	return cmd
}
