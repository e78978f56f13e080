// Package waitlistclient submits signups to the waitlist API. Every entry point
// (landing page form, modal, CLI) goes through Submit and differs only in the
// referral source it passes.
package waitlistclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	SubmitPath = "/api/waitlist"

	SourceLandingPageForm = "landing_page_form"
	SourceModalPopup      = "modal_popup"
	SourceCLI             = "cli"

	defaultTimeout = 15 * time.Second
)

var (
	ErrAlreadyJoined = errors.New("waitlistclient: already on the waitlist")
	ErrInvalidEmail  = errors.New("waitlistclient: valid email is required")
)

type Submission struct {
	Email          string  `json:"email"`
	Name           *string `json:"name,omitempty"`
	WhatsappNumber *string `json:"whatsappNumber,omitempty"`
	ReferralSource *string `json:"referralSource,omitempty"`
}

type Entry struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           *string `json:"name"`
	WhatsappNumber *string `json:"whatsapp_number"`
	ReferralSource string  `json:"referral_source"`
	CreatedAt      string  `json:"created_at"`
}

// Result is the decoded response envelope. Entry is set only on 201.
type Result struct {
	StatusCode int
	Message    string
	Entry      *Entry
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *Entry `json:"data"`
}

// APIError carries a non-2xx response that has no dedicated sentinel.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("waitlistclient: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http *resty.Client
}

type Option func(*resty.Client)

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")

	for _, opt := range opts {
		opt(rc)
	}

	return &Client{http: rc}
}

// Submit posts the submission tagged with referralSource. An empty
// referralSource leaves the choice to the server (which stores "website").
//
// 409 returns ErrAlreadyJoined and 400 ErrInvalidEmail, each alongside the
// decoded Result; other non-2xx statuses return an *APIError.
func (c *Client) Submit(ctx context.Context, referralSource string, submission Submission) (*Result, error) {
	if referralSource != "" {
		source := referralSource
		submission.ReferralSource = &source
	}

	var body envelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(submission).
		SetResult(&body).
		SetError(&body).
		Post(SubmitPath)
	if err != nil {
		return nil, fmt.Errorf("waitlistclient: submit: %w", err)
	}

	result := &Result{
		StatusCode: resp.StatusCode(),
		Message:    body.Message,
	}

	switch resp.StatusCode() {
	case http.StatusCreated, http.StatusOK:
		result.Entry = body.Data
		return result, nil
	case http.StatusConflict:
		return result, ErrAlreadyJoined
	case http.StatusBadRequest:
		return result, ErrInvalidEmail
	default:
		message := body.Message
		if message == "" {
			message = strings.TrimSpace(resp.String())
		}
		return result, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}
}
