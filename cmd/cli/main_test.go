package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/pkg/waitlistclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionFromArgs(t *testing.T) {
	s := submissionFromArgs([]string{"jane@example.com"})
	assert.Equal(t, "jane@example.com", s.Email)
	assert.Nil(t, s.Name)
	assert.Nil(t, s.WhatsappNumber)

	s = submissionFromArgs([]string{"jane@example.com", "Jane", "+234 801"})
	require.NotNil(t, s.Name)
	require.NotNil(t, s.WhatsappNumber)
	assert.Equal(t, "Jane", *s.Name)
	assert.Equal(t, "+234 801", *s.WhatsappNumber)
}

func TestRollback_RejectsInvalidSteps(t *testing.T) {
	root := newRootCommand(log.NewLoggerWithJSONOutput())
	root.SetArgs([]string{"rollback", "zero"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestJoin_PrintsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, waitlistclient.SubmitPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":409,"message":"You are already on the waitlist!","data":null}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	root := newRootCommand(log.NewLoggerWithJSONOutput())
	root.SetArgs([]string{"join", "jane@example.com", "--url", srv.URL})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	assert.ErrorIs(t, err, waitlistclient.ErrAlreadyJoined)
	assert.Contains(t, out.String(), "You are already on the waitlist!")
}
