package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyBackendMode         = "backend.mode"
	KeyBackendBaseURL      = "backend.base_url"
	KeyBackendToken        = "backend.token"
	KeyBackendAuthScheme   = "backend.auth_scheme"
	KeyBackendTimeout      = "backend.timeout_seconds"
	KeyBackendRate         = "backend.requests_per_second"
	KeyBackendOutputDir    = "backend.output_dir"
	KeyEditorFontSize      = "editor.font_size"
	KeyEditorColor         = "editor.color"
	KeyEditorImageWidth    = "editor.image_width"
	KeyEditorPreserveRatio = "editor.preserve_image_aspect"
)

var settingKeys = []string{
	KeyBackendMode,
	KeyBackendBaseURL,
	KeyBackendToken,
	KeyBackendAuthScheme,
	KeyBackendTimeout,
	KeyBackendRate,
	KeyBackendOutputDir,
	KeyEditorFontSize,
	KeyEditorColor,
	KeyEditorImageWidth,
	KeyEditorPreserveRatio,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	timeout := defaults.Backend.Timeout
	if secs := s.configStore.GetInt(KeyBackendTimeout); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			Mode:              s.getBackendMode(defaults.Backend.Mode),
			BaseURL:           s.getString(KeyBackendBaseURL, defaults.Backend.BaseURL),
			Token:             s.configStore.GetString(KeyBackendToken),
			AuthScheme:        s.getAuthScheme(defaults.Backend.AuthScheme),
			Timeout:           timeout,
			RequestsPerSecond: s.getFloat(KeyBackendRate, defaults.Backend.RequestsPerSecond),
			OutputDir:         s.configStore.GetString(KeyBackendOutputDir),
		},
		Editor: domain.EditorSettings{
			FontSize:            s.getFloat(KeyEditorFontSize, defaults.Editor.FontSize),
			Color:               s.getColor(defaults.Editor.Color),
			ImageWidth:          s.getInt(KeyEditorImageWidth, defaults.Editor.ImageWidth),
			PreserveImageAspect: s.getBool(KeyEditorPreserveRatio, defaults.Editor.PreserveImageAspect),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyBackendMode, settings.Backend.Mode.String()},
		{KeyBackendBaseURL, settings.Backend.BaseURL},
		{KeyBackendAuthScheme, settings.Backend.AuthScheme.String()},
		{KeyBackendTimeout, int(settings.Backend.Timeout / time.Second)},
		{KeyBackendRate, settings.Backend.RequestsPerSecond},
		{KeyBackendOutputDir, settings.Backend.OutputDir},
		{KeyEditorFontSize, settings.Editor.FontSize},
		{KeyEditorColor, settings.Editor.Color},
		{KeyEditorImageWidth, settings.Editor.ImageWidth},
		{KeyEditorPreserveRatio, settings.Editor.PreserveImageAspect},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Token is only written when set so Save never wipes it.
	if settings.Backend.Token != "" {
		if err := s.configStore.Set(KeyBackendToken, settings.Backend.Token); err != nil {
			return fmt.Errorf("save %s: %w", KeyBackendToken, err)
		}
	}

	return nil
}

// Set updates one setting by key, parsing value for the key's type.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyBackendMode:
		settings.Backend.Mode = domain.BackendMode(value)
	case KeyBackendBaseURL:
		settings.Backend.BaseURL = strings.TrimRight(value, "/")
	case KeyBackendToken:
		return s.SetToken(value)
	case KeyBackendAuthScheme:
		settings.Backend.AuthScheme = domain.AuthScheme(value)
	case KeyBackendTimeout:
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number of seconds", domain.ErrInvalidInput, key)
		}
		settings.Backend.Timeout = time.Duration(secs) * time.Second
	case KeyBackendRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Backend.RequestsPerSecond = rate
	case KeyBackendOutputDir:
		settings.Backend.OutputDir = value
	case KeyEditorFontSize:
		size, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Editor.FontSize = size
	case KeyEditorColor:
		if !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		settings.Editor.Color = strings.ToLower(value)
	case KeyEditorImageWidth:
		width, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidInput, key)
		}
		settings.Editor.ImageWidth = width
	case KeyEditorPreserveRatio:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Editor.PreserveImageAspect = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// SetBackendMode switches between the remote service and the local renderer.
func (s *SettingsService) SetBackendMode(mode domain.BackendMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid backend mode: %s", mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Backend.Mode = mode
	return s.Save(settings)
}

// SetToken stores the access token. An empty token removes it.
func (s *SettingsService) SetToken(token string) error {
	if err := s.configStore.Set(KeyBackendToken, strings.TrimSpace(token)); err != nil {
		return fmt.Errorf("save %s: %w", KeyBackendToken, err)
	}
	return nil
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if !settings.Backend.IsConfigured() {
		return fmt.Errorf(
			"backend mode %q is not configured: set %s or %s",
			settings.Backend.Mode.Description(), KeyBackendBaseURL, KeyBackendOutputDir,
		)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackendMode(defaultVal domain.BackendMode) domain.BackendMode {
	mode := domain.BackendMode(s.configStore.GetString(KeyBackendMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getAuthScheme(defaultVal domain.AuthScheme) domain.AuthScheme {
	scheme := domain.AuthScheme(s.configStore.GetString(KeyBackendAuthScheme))
	if !scheme.IsValid() {
		return defaultVal
	}
	return scheme
}

func (s *SettingsService) getColor(defaultVal string) string {
	val := s.configStore.GetString(KeyEditorColor)
	if _, err := domain.ParseHexColor(val); err != nil {
		return defaultVal
	}
	return val
}
