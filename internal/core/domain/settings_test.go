package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBackendMode_IsValid tests valid and invalid backend modes
func TestBackendMode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		mode     BackendMode
		expected bool
	}{
		{"remote is valid", BackendModeRemote, true},
		{"local is valid", BackendModeLocal, true},
		{"empty is invalid", BackendMode(""), false},
		{"unknown is invalid", BackendMode("cloud"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.IsValid())
		})
	}
}

// TestBackendMode_Description tests descriptions including unknown
func TestBackendMode_Description(t *testing.T) {
	assert.Contains(t, BackendModeRemote.Description(), "Remote")
	assert.Contains(t, BackendModeLocal.Description(), "Local")
	assert.Equal(t, "Unknown", BackendMode("x").Description())
}

// TestAuthScheme_IsValid tests auth scheme validation
func TestAuthScheme_IsValid(t *testing.T) {
	assert.True(t, AuthSchemeRaw.IsValid())
	assert.True(t, AuthSchemeBearer.IsValid())
	assert.False(t, AuthScheme("basic").IsValid())
	assert.Len(t, AllAuthSchemes(), 2)
	assert.Len(t, AllBackendModes(), 2)
}

// TestDefaultAppSettings tests default values
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, BackendModeRemote, s.Backend.Mode)
	assert.Equal(t, "http://localhost:5000/api", s.Backend.BaseURL)
	assert.Equal(t, AuthSchemeRaw, s.Backend.AuthScheme)
	assert.Equal(t, 120*time.Second, s.Backend.Timeout)
	assert.Empty(t, s.Backend.Token)
	assert.Equal(t, 20.0, s.Editor.FontSize)
	assert.Equal(t, "#000000", s.Editor.Color)
	assert.Equal(t, 120, s.Editor.ImageWidth)
	assert.True(t, s.Editor.PreserveImageAspect)
	require.NoError(t, s.Validate())
}

// TestAppSettings_Validate tests each rejected field
func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"bad mode", func(s *AppSettings) { s.Backend.Mode = "x" }},
		{"bad scheme", func(s *AppSettings) { s.Backend.AuthScheme = "x" }},
		{"zero timeout", func(s *AppSettings) { s.Backend.Timeout = 0 }},
		{"zero rate", func(s *AppSettings) { s.Backend.RequestsPerSecond = 0 }},
		{"zero font", func(s *AppSettings) { s.Editor.FontSize = 0 }},
		{"bad colour", func(s *AppSettings) { s.Editor.Color = "black" }},
		{"zero width", func(s *AppSettings) { s.Editor.ImageWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// TestBackendSettings_IsConfigured tests mode-specific requirements
func TestBackendSettings_IsConfigured(t *testing.T) {
	remote := BackendSettings{Mode: BackendModeRemote, BaseURL: "http://x"}
	assert.True(t, remote.IsConfigured())

	remote.BaseURL = ""
	assert.False(t, remote.IsConfigured())

	local := BackendSettings{Mode: BackendModeLocal}
	assert.False(t, local.IsConfigured())

	local.OutputDir = "/tmp/out"
	assert.True(t, local.IsConfigured())

	assert.False(t, BackendSettings{}.IsConfigured())
}
