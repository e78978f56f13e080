package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/internal/models"
	apperrors "github.com/bidoro/waitlist-api/pkg/errors"
	"github.com/bidoro/waitlist-api/pkg/mailer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	repo    *MockWaitlistRepository
	sender  *mailer.MockSender
	metrics *Metrics
	service WaitlistService
}

func newTestService(t *testing.T) *testDeps {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deps := &testDeps{
		repo:    NewMockWaitlistRepository(ctrl),
		sender:  mailer.NewMockSender(ctrl),
		metrics: NewMetrics(prometheus.NewRegistry()),
	}
	deps.sender.EXPECT().Provider().Return("mock").AnyTimes()

	confirmation := NewConfirmationMailer(deps.sender, EmailSettings{})
	deps.service = NewWaitlistService(log.NewLoggerWithJSONOutput(), deps.repo, confirmation, deps.metrics)
	return deps
}

func strPtr(s string) *string { return &s }

// echoCreate behaves like the database: assigns id, default source and timestamp.
func echoCreate(t *testing.T, check func(entry *models.WaitlistEntry)) func(context.Context, *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	return func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
		if check != nil {
			check(entry)
		}
		entry.ID = "entry-1"
		entry.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		return entry, nil
	}
}

func TestJoinWaitlist_Success(t *testing.T) {
	deps := newTestService(t)

	req := &JoinWaitlistRequest{
		Email:          "  Jane@Example.com ",
		Name:           strPtr("  Jane "),
		WhatsappNumber: strPtr("+234 801 234 5678"),
		ReferralSource: strPtr("landing_page_form"),
	}

	deps.repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(
		echoCreate(t, func(entry *models.WaitlistEntry) {
			assert.Equal(t, "jane@example.com", entry.Email)
			require.NotNil(t, entry.Name)
			assert.Equal(t, "Jane", *entry.Name)
			require.NotNil(t, entry.WhatsappNumber)
			assert.Equal(t, "+2348012345678", *entry.WhatsappNumber)
			assert.Equal(t, "landing_page_form", entry.ReferralSource)
		}),
	)
	deps.sender.EXPECT().
		Send(gomock.Any(), "jane@example.com", DefaultConfirmationSubject, gomock.Any()).
		Return("<id@bidoro.com>", nil)

	result, err := deps.service.JoinWaitlist(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "entry-1", result.ID)
	assert.Equal(t, "jane@example.com", result.Email)
	assert.Equal(t, "2026-03-01T10:00:00Z", result.CreatedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.submissions.WithLabelValues(outcomeJoined)))
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.confirmations.WithLabelValues(confirmationSent)))
}

func TestJoinWaitlist_InvalidEmailNeverTouchesCollaborators(t *testing.T) {
	for _, email := range []string{"", "   ", "jane.example.com"} {
		t.Run(email, func(t *testing.T) {
			deps := newTestService(t)

			result, err := deps.service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{Email: email})

			assert.Nil(t, result)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
			assert.Equal(t, MsgInvalidEmail, apperrors.GetHumanReadableMessage(err))
			assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.submissions.WithLabelValues(outcomeInvalid)))
		})
	}
}

func TestJoinWaitlist_NilRequest(t *testing.T) {
	deps := newTestService(t)

	result, err := deps.service.JoinWaitlist(context.Background(), nil)

	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
}

func TestJoinWaitlist_DuplicateSkipsConfirmation(t *testing.T) {
	deps := newTestService(t)

	deps.repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.NewConflictError(MsgAlreadyJoined, errors.New("duplicate key value violates unique constraint")))

	result, err := deps.service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{Email: "jane@example.com"})

	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	assert.Equal(t, 409, apperrors.HTTPStatusCode(err))
	assert.Equal(t, MsgAlreadyJoined, apperrors.GetHumanReadableMessage(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.submissions.WithLabelValues(outcomeDuplicate)))
}

func TestJoinWaitlist_StorageErrorSkipsConfirmation(t *testing.T) {
	deps := newTestService(t)

	deps.repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.NewDatabaseError(MsgStorageFailure, errors.New("dial tcp: connection refused")))

	result, err := deps.service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{Email: "jane@example.com"})

	assert.Nil(t, result)
	assert.Equal(t, 500, apperrors.HTTPStatusCode(err))
	assert.Equal(t, MsgStorageFailure, apperrors.GetHumanReadableMessage(err))
	assert.NotContains(t, apperrors.GetHumanReadableMessage(err), "connection refused")
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.submissions.WithLabelValues(outcomeStorageError)))
}

func TestJoinWaitlist_SenderFailureStillSucceeds(t *testing.T) {
	deps := newTestService(t)

	deps.repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(echoCreate(t, nil))
	deps.sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("smtp: 535 authentication failed"))

	result, err := deps.service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{Email: "jane@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "entry-1", result.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.confirmations.WithLabelValues(confirmationFailed)))
}

func TestJoinWaitlist_ConfirmationOutlivesRequestDeadline(t *testing.T) {
	deps := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())

	deps.repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
			// The client goes away right after the insert.
			cancel()
			entry.ID = "entry-1"
			return entry, nil
		},
	)
	deps.sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(sendCtx context.Context, _, _, _ string) (string, error) {
			assert.NoError(t, sendCtx.Err())
			return "<id>", nil
		},
	)

	_, err := deps.service.JoinWaitlist(ctx, &JoinWaitlistRequest{Email: "jane@example.com"})
	require.NoError(t, err)
}

func TestJoinWaitlist_ReferralSource(t *testing.T) {
	tests := []struct {
		name   string
		source *string
		want   string
	}{
		{name: "absent", source: nil, want: "website"},
		{name: "empty", source: strPtr(""), want: "website"},
		{name: "verbatim", source: strPtr("  Modal_Popup "), want: "  Modal_Popup "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestService(t)

			deps.repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(
				echoCreate(t, func(entry *models.WaitlistEntry) {
					assert.Equal(t, tt.want, entry.ReferralSource)
				}),
			)
			deps.sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("<id>", nil)

			result, err := deps.service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{
				Email:          "jane@example.com",
				ReferralSource: tt.source,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.ReferralSource)
		})
	}
}

func TestJoinWaitlist_NoSenderConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockWaitlistRepository(ctrl)
	metrics := NewMetrics(nil)
	service := NewWaitlistService(log.NewLoggerWithJSONOutput(), repo, NewConfirmationMailer(nil, EmailSettings{}), metrics)

	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(echoCreate(t, nil))

	result, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{Email: "jane@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "entry-1", result.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.confirmations.WithLabelValues(confirmationSkipped)))
}
