package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

const (
	DefaultRequestTimeout = 30 * time.Second

	// ShutdownFlushTimeout bounds how long buffered traces and Sentry events
	// may delay process exit.
	ShutdownFlushTimeout = 5 * time.Second

	DefaultSMTPPort = 587
)
