package driving

import "github.com/devkavach22/kavach-edit/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting by its dotted key, e.g. "backend.mode".
	Set(key, value string) error

	// Keys returns every settable key in display order.
	Keys() []string

	// SetBackendMode switches between the remote service and the local renderer.
	SetBackendMode(mode domain.BackendMode) error

	// SetToken stores the access token for the remote backend.
	SetToken(token string) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
