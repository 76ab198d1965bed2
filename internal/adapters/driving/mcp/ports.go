package mcp

import (
	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Editor runs the editing session.
	Editor driving.EditorService

	// Plan applies placement plans. Optional.
	Plan driving.PlanService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	return nil
}
