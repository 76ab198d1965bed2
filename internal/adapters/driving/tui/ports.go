// Package tui provides an interactive terminal user interface for kavach.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Editor runs the editing session.
	Editor driving.EditorService

	// Settings manages application settings. Optional; when set, unusable
	// settings are reported on start.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(editor driving.EditorService, settings driving.SettingsService) *Ports {
	return &Ports{
		Editor:   editor,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	return nil
}
