package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/bidoro/waitlist-api/pkg/utils"
	"github.com/bidoro/waitlist-api/pkg/waitlistclient"
	"github.com/spf13/cobra"
)

// newJoinCommand submits through a running server, exactly like the web forms.
func newJoinCommand() *cobra.Command {
	var (
		baseURL string
		source  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "join <email> [name] [whatsapp]",
		Short: "Submit a signup to a running waitlist API",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			submission := submissionFromArgs(args)

			client := waitlistclient.New(baseURL, waitlistclient.WithTimeout(timeout))
			result, err := client.Submit(cmd.Context(), source, submission)

			switch {
			case errors.Is(err, waitlistclient.ErrAlreadyJoined), errors.Is(err, waitlistclient.ErrInvalidEmail):
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return err
			case err != nil:
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			if result.Entry != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "id=%s email=%s source=%s\n", result.Entry.ID, result.Entry.Email, result.Entry.ReferralSource)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", utils.GetEnvTrimmedOrDefault("WAITLIST_API_URL", "http://localhost:8080"), "base URL of the waitlist API (env WAITLIST_API_URL)")
	cmd.Flags().StringVar(&source, "source", waitlistclient.SourceCLI, "referral source recorded with the signup")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	return cmd
}

func submissionFromArgs(args []string) waitlistclient.Submission {
	submission := waitlistclient.Submission{Email: args[0]}
	if len(args) > 1 && args[1] != "" {
		name := args[1]
		submission.Name = &name
	}
	if len(args) > 2 && args[2] != "" {
		whatsapp := args[2]
		submission.WhatsappNumber = &whatsapp
	}
	return submission
}
