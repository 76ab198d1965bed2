package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// BackendMode selects where edit instructions are rendered.
type BackendMode string

// Available backend modes.
const (
	// BackendModeRemote posts the document to the edit service over HTTP.
	BackendModeRemote BackendMode = "remote"

	// BackendModeLocal renders instructions in-process and writes the result
	// to the output directory.
	BackendModeLocal BackendMode = "local"
)

// IsValid returns true if the backend mode is recognised.
func (m BackendMode) IsValid() bool {
	switch m {
	case BackendModeRemote, BackendModeLocal:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m BackendMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m BackendMode) Description() string {
	switch m {
	case BackendModeRemote:
		return "Remote (edit service over HTTP)"
	case BackendModeLocal:
		return "Local (render in-process)"
	default:
		return unknownDescription
	}
}

// AuthScheme controls how the access token is presented to the edit service.
type AuthScheme string

// Available auth schemes.
const (
	// AuthSchemeRaw sends the token as the bare Authorization header value.
	AuthSchemeRaw AuthScheme = "raw"

	// AuthSchemeBearer sends "Authorization: Bearer <token>".
	AuthSchemeBearer AuthScheme = "bearer"
)

// IsValid returns true if the auth scheme is recognised.
func (s AuthScheme) IsValid() bool {
	return s == AuthSchemeRaw || s == AuthSchemeBearer
}

// String returns the string representation.
func (s AuthScheme) String() string {
	return string(s)
}

// BackendSettings holds edit backend configuration.
type BackendSettings struct {
	// Mode selects the remote service or the local renderer.
	Mode BackendMode

	// BaseURL is the API root, e.g. http://localhost:5000/api.
	BaseURL string

	// Token is the access token; empty means no Authorization header.
	Token string

	// AuthScheme decides how Token is sent.
	AuthScheme AuthScheme

	// Timeout bounds a single edit or download request.
	Timeout time.Duration

	// RequestsPerSecond limits calls to the edit service.
	RequestsPerSecond float64

	// OutputDir is where the local renderer writes results.
	OutputDir string
}

// IsConfigured returns true if the backend can be used as-is.
func (b BackendSettings) IsConfigured() bool {
	switch b.Mode {
	case BackendModeRemote:
		return b.BaseURL != ""
	case BackendModeLocal:
		return b.OutputDir != ""
	default:
		return false
	}
}

// EditorSettings holds defaults applied to new annotations.
type EditorSettings struct {
	FontSize   float64
	Color      string
	ImageWidth int

	// PreserveImageAspect sizes image height from the decoded image.
	// When false, images are placed square.
	PreserveImageAspect bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Backend holds edit backend settings.
	Backend BackendSettings

	// Editor holds annotation defaults.
	Editor EditorSettings
}

// Default settings values.
const (
	DefaultBaseURL           = "http://localhost:5000/api"
	DefaultTimeout           = 120 * time.Second
	DefaultRequestsPerSecond = 2.0
)

// DefaultAppSettings returns settings with sensible defaults.
// The token is left empty; the user sets it with the settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			Mode:              BackendModeRemote,
			BaseURL:           DefaultBaseURL,
			AuthScheme:        AuthSchemeRaw,
			Timeout:           DefaultTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Editor: EditorSettings{
			FontSize:            DefaultFontSize,
			Color:               DefaultColor,
			ImageWidth:          DefaultImageDisplayWidth,
			PreserveImageAspect: true,
		},
	}
}

// Validate checks every field and returns the first problem found.
func (s AppSettings) Validate() error {
	if !s.Backend.Mode.IsValid() {
		return fmt.Errorf("%w: backend mode %q", ErrInvalidInput, s.Backend.Mode)
	}
	if !s.Backend.AuthScheme.IsValid() {
		return fmt.Errorf("%w: auth scheme %q", ErrInvalidInput, s.Backend.AuthScheme)
	}
	if s.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	if s.Backend.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests per second must be positive", ErrInvalidInput)
	}
	if !isPositive(s.Editor.FontSize) {
		return fmt.Errorf("%w: font size must be positive", ErrInvalidInput)
	}
	if _, err := ParseHexColor(s.Editor.Color); err != nil {
		return err
	}
	if s.Editor.ImageWidth <= 0 {
		return fmt.Errorf("%w: image width must be positive", ErrInvalidInput)
	}
	return nil
}

// AllBackendModes returns all available backend modes.
func AllBackendModes() []BackendMode {
	return []BackendMode{BackendModeRemote, BackendModeLocal}
}

// AllAuthSchemes returns all available auth schemes.
func AllAuthSchemes() []AuthScheme {
	return []AuthScheme{AuthSchemeRaw, AuthSchemeBearer}
}
