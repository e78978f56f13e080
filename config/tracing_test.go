package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantHostPort string
		wantPath     string
		wantInsecure bool
		wantErr      bool
	}{
		{name: "http default path", raw: "http://collector:4318", wantHostPort: "collector:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "https custom path", raw: "https://otel.example.com/custom", wantHostPort: "otel.example.com", wantPath: "/custom"},
		{name: "bare host port", raw: "collector:4318", wantHostPort: "collector:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "bare with path", raw: "collector:4318/v1/traces", wantErr: true},
		{name: "grpc scheme", raw: "grpc://collector:4317", wantErr: true},
		{name: "empty", raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hostport, path, insecure, err := parseOTLPEndpoint(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHostPort, hostport)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantInsecure, insecure)
		})
	}
}

func TestParseSampleRatio(t *testing.T) {
	assert.Equal(t, 1.0, parseSampleRatio(""))
	assert.Equal(t, 0.25, parseSampleRatio("0.25"))
	assert.Equal(t, 1.0, parseSampleRatio("2"))
	assert.Equal(t, 1.0, parseSampleRatio("half"))
}
