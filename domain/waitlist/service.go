package waitlist

import (
	"context"

	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/internal/models"
	"github.com/bidoro/waitlist-api/internal/reporting"
	apperrors "github.com/bidoro/waitlist-api/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/bidoro/waitlist-api/domain/waitlist")

type WaitlistService interface {
	// JoinWaitlist validates and stores a submission, then attempts the
	// confirmation email. Email failures never change the result.
	JoinWaitlist(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error)
}

type waitlistService struct {
	logger       *log.Logger
	repository   WaitlistRepository
	confirmation *ConfirmationMailer
	metrics      *Metrics
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, confirmation *ConfirmationMailer, metrics *Metrics) WaitlistService {
	return &waitlistService{
		logger:       logger,
		repository:   repository,
		confirmation: confirmation,
		metrics:      metrics,
	}
}

func (s *waitlistService) JoinWaitlist(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger).WithComponent("waitlist")

	if req == nil || !IsValidEmail(req.Email) {
		logger.Warn("JoinWaitlist received a submission without a valid email")
		s.metrics.observeSubmission(outcomeInvalid)
		return nil, apperrors.NewInvalidRequestError(MsgInvalidEmail, nil)
	}

	entry := ToWaitlistEntryModel(req)

	created, err := s.repository.CreateEntry(ctx, entry)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeConflict) {
			logger.Info("Email is already on the waitlist", "email", log.MaskEmail(entry.Email))
			s.metrics.observeSubmission(outcomeDuplicate)
			return nil, err
		}

		logger.Error("Failed to create waitlist entry", "error", err)
		s.metrics.observeSubmission(outcomeStorageError)
		return nil, err
	}

	logger.Info("Waitlist entry created",
		"id", created.ID,
		"email", log.MaskEmail(created.Email),
		"referral_source", created.ReferralSource,
	)
	s.metrics.observeSubmission(outcomeJoined)

	s.sendConfirmation(ctx, logger, created)

	response := ToWaitlistEntryResponse(created)
	return &response, nil
}

// sendConfirmation is awaited but detached from the request deadline, and its
// outcome is only logged, counted and reported.
func (s *waitlistService) sendConfirmation(ctx context.Context, logger *log.Logger, entry *models.WaitlistEntry) {
	if !s.confirmation.Enabled() {
		logger.Warn("No mail sender configured; confirmation email skipped", "id", entry.ID)
		s.metrics.observeConfirmation(confirmationSkipped)
		return
	}

	sendCtx, span := tracer.Start(context.WithoutCancel(ctx), "waitlist.send_confirmation")
	defer span.End()
	span.SetAttributes(attribute.String("mail.provider", s.confirmation.Provider()))

	messageID, err := s.confirmation.Send(sendCtx, entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "confirmation email failed")

		logger.Error("Failed to send confirmation email",
			"id", entry.ID,
			"email", log.MaskEmail(entry.Email),
			"error", err,
		)
		s.metrics.observeConfirmation(confirmationFailed)
		reporting.CaptureError(err, map[string]interface{}{
			"component": "waitlist.confirmation",
			"entry_id":  entry.ID,
			"provider":  s.confirmation.Provider(),
		})
		return
	}

	logger.Info("Confirmation email sent", "id", entry.ID, "message_id", messageID)
	s.metrics.observeConfirmation(confirmationSent)
}
