package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bidoro/waitlist-api/config/router"
	"github.com/bidoro/waitlist-api/internal/log"
	apperrors "github.com/bidoro/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService lets controller tests drive every service outcome, including panics.
type stubService struct {
	join func(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error)
}

func (s *stubService) JoinWaitlist(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
	return s.join(ctx, req)
}

type responseEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serveJoin(t *testing.T, service WaitlistService, body string) (*httptest.ResponseRecorder, responseEnvelope) {
	t.Helper()

	rs := router.CreateRouterService(log.NewLoggerWithJSONOutput(), &router.RouterConfig{RequestTimeout: 5 * time.Second})
	rs.MountController(router.NewRESTController("WaitlistController", MountPoint, func(rs *router.RouterService, c *router.RESTController) {
		rs.AddPostHandler(c, "", joinWaitlistHandler(service))
	}))

	req := httptest.NewRequest(http.MethodPost, MountPoint, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	var env responseEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestJoinHandler_Created(t *testing.T) {
	service := &stubService{join: func(_ context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
		assert.Equal(t, "Jane@Example.com", req.Email)
		require.NotNil(t, req.WhatsappNumber)
		assert.Equal(t, "+234 801", *req.WhatsappNumber)
		return &WaitlistEntryResponse{ID: "entry-1", Email: "jane@example.com", ReferralSource: "website"}, nil
	}}

	w, env := serveJoin(t, service, `{"email":"Jane@Example.com","whatsappNumber":"+234 801"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 201, env.Code)
	assert.Equal(t, MsgJoined, env.Message)

	var data WaitlistEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "entry-1", data.ID)
}

func TestJoinHandler_BadBodies(t *testing.T) {
	service := &stubService{join: func(context.Context, *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	for _, body := range []string{`[]`, `null`, `"jane@example.com"`, `{"name":"Jane"}`, `{"email":"nope"}`, `{"email":42}`} {
		w, env := serveJoin(t, service, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, MsgInvalidEmail, env.Message, body)
		assert.Equal(t, "null", string(env.Data), body)
	}
}

func TestJoinHandler_UnreadableBodyIsNotBlamedOnEmail(t *testing.T) {
	service := &stubService{join: func(context.Context, *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	bodies := []string{
		``,
		`{`,
		`not json`,
		`{"email":"valid@example.com","name":42}`,
		`{"email":"valid@example.com","whatsappNumber":2348012345678}`,
		`{"email":"valid@example.com","referralSource":{"page":"home"}}`,
	}

	for _, body := range bodies {
		w, env := serveJoin(t, service, body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.Equal(t, apperrors.InternalServerErrorMessage, env.Message, body)
		assert.NotEqual(t, MsgInvalidEmail, env.Message, body)
	}
}

func TestJoinHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "duplicate", err: apperrors.NewConflictError(MsgAlreadyJoined, nil), wantStatus: http.StatusConflict, wantMsg: MsgAlreadyJoined},
		{name: "storage", err: apperrors.NewDatabaseError(MsgStorageFailure, errors.New("pq: too many connections")), wantStatus: http.StatusInternalServerError, wantMsg: MsgStorageFailure},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: apperrors.InternalServerErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubService{join: func(context.Context, *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
				return nil, tt.err
			}}

			w, env := serveJoin(t, service, `{"email":"jane@example.com"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus, env.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestJoinHandler_PanicBecomesInternalServerError(t *testing.T) {
	service := &stubService{join: func(context.Context, *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
		panic("nil map write")
	}}

	w, env := serveJoin(t, service, `{"email":"jane@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", env.Message)
}

func TestNewWaitlistController_Mounts(t *testing.T) {
	rs := router.CreateRouterService(log.NewLoggerWithJSONOutput(), &router.RouterConfig{RequestTimeout: 5 * time.Second})
	rs.MountController(NewWaitlistServiceFactory(nil, log.NewLoggerWithJSONOutput(), nil).CreateController())

	req := httptest.NewRequest(http.MethodPost, MountPoint, bytes.NewBufferString(`{"email":"missing-at"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFactory_CreateService(t *testing.T) {
	service := NewWaitlistServiceFactory(nil, log.NewLoggerWithJSONOutput(), nil).CreateService()
	require.NotNil(t, service)

	_, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{Email: "invalid"})
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
}
