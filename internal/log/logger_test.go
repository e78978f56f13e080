package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane.doe@example.com"))
	assert.Equal(t, "***", MaskEmail("@example.com"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail(""))
}

func TestGetOrGenerateCorrelationID(t *testing.T) {
	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "abc-123")
	assert.Equal(t, "abc-123", GetOrGenerateCorrelationID(ctx))

	generated := GetOrGenerateCorrelationID(context.Background())
	assert.Len(t, generated, 36)
}

func TestGetLoggerInstanceFromContext_PrefersInjectedLogger(t *testing.T) {
	injected := NewLoggerWithJSONOutput()
	ctx := context.WithValue(context.Background(), LoggerKeyForContext, injected)

	assert.Same(t, injected, GetLoggerInstanceFromContext(ctx, NewLoggerWithJSONOutput()))
	assert.NotNil(t, GetLoggerInstanceFromContext(context.Background(), nil))
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "DEBUG", levelFromEnv().String())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, "INFO", levelFromEnv().String())
}
