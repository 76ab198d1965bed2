package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkavach22/kavach-edit/internal/adapters/driven/storage/memory"
	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("backend.mode", "local")
	_ = store.Set("backend.output_dir", "/tmp/out")
	_ = store.Set("backend.timeout_seconds", int64(30))
	_ = store.Set("editor.font_size", 12.5)
	_ = store.Set("editor.color", "#ff0000")
	_ = store.Set("editor.preserve_image_aspect", false)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.BackendModeLocal, settings.Backend.Mode)
	assert.Equal(t, "/tmp/out", settings.Backend.OutputDir)
	assert.Equal(t, 30*time.Second, settings.Backend.Timeout)
	assert.Equal(t, 12.5, settings.Editor.FontSize)
	assert.Equal(t, "#ff0000", settings.Editor.Color)
	assert.False(t, settings.Editor.PreserveImageAspect)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("backend.mode", "cloud")
	_ = store.Set("backend.auth_scheme", "basic")
	_ = store.Set("editor.color", "black")
	_ = store.Set("editor.image_width", -5)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Backend.Mode, settings.Backend.Mode)
	assert.Equal(t, defaults.Backend.AuthScheme, settings.Backend.AuthScheme)
	assert.Equal(t, defaults.Editor.Color, settings.Editor.Color)
	assert.Equal(t, defaults.Editor.ImageWidth, settings.Editor.ImageWidth)
}

func TestSettingsService_Save_PreservesToken(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.SetToken("abc"))

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "abc", store.GetString("backend.token"))
	assert.Equal(t, 120, store.GetInt("backend.timeout_seconds"))
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	settings := domain.DefaultAppSettings()
	settings.Editor.ImageWidth = 0

	err := service.Save(&settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(*testing.T, *domain.AppSettings)
	}{
		{"backend.mode", "local", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.BackendModeLocal, s.Backend.Mode)
		}},
		{"backend.base_url", "https://api.example.com/api/", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "https://api.example.com/api", s.Backend.BaseURL)
		}},
		{"backend.auth_scheme", "bearer", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.AuthSchemeBearer, s.Backend.AuthScheme)
		}},
		{"backend.timeout_seconds", "45", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 45*time.Second, s.Backend.Timeout)
		}},
		{"backend.requests_per_second", "0.5", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 0.5, s.Backend.RequestsPerSecond)
		}},
		{"editor.font_size", "16", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 16.0, s.Editor.FontSize)
		}},
		{"editor.color", "3366CC", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "#3366cc", s.Editor.Color)
		}},
		{"editor.image_width", "200", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 200, s.Editor.ImageWidth)
		}},
		{"editor.preserve_image_aspect", "false", func(t *testing.T, s *domain.AppSettings) {
			assert.False(t, s.Editor.PreserveImageAspect)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"unknown.key", "x"},
		{"backend.mode", "cloud"},
		{"backend.timeout_seconds", "soon"},
		{"backend.requests_per_second", "-1"},
		{"editor.font_size", "big"},
		{"editor.color", "red"},
		{"editor.image_width", "1.5"},
		{"editor.preserve_image_aspect", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetToken(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("backend.token", "  tok  "))
	settings, _ := service.Get()
	assert.Equal(t, "tok", settings.Backend.Token)

	require.NoError(t, service.SetToken(""))
	settings, _ = service.Get()
	assert.Empty(t, settings.Backend.Token)
}

func TestSettingsService_SetBackendMode(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetBackendMode(domain.BackendModeLocal))
	assert.Error(t, service.SetBackendMode(domain.BackendMode("x")))

	settings, _ := service.Get()
	assert.Equal(t, domain.BackendModeLocal, settings.Backend.Mode)
}

func TestSettingsService_Validate(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NoError(t, service.Validate())

	require.NoError(t, service.SetBackendMode(domain.BackendModeLocal))
	assert.Error(t, service.Validate(), "local mode needs an output dir")

	require.NoError(t, service.Set("backend.output_dir", "/tmp/out"))
	assert.NoError(t, service.Validate())
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()

	assert.Contains(t, keys, "backend.mode")
	assert.Contains(t, keys, "editor.preserve_image_aspect")
	keys[0] = "mutated"
	assert.Equal(t, "backend.mode", service.Keys()[0])
}
