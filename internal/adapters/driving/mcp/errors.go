// Package mcp provides an MCP (Model Context Protocol) server adapter for kavach.
// It lets AI assistants open a PDF, place annotations and save the result
// through the same editing session the CLI and TUI use.
package mcp

import "errors"

// ErrMissingEditorService is returned when the editor service is not provided.
var ErrMissingEditorService = errors.New("mcp: editor service is required")

// ErrPlansUnavailable is returned by apply_plan when no plan service is configured.
var ErrPlansUnavailable = errors.New("mcp: plan service is not configured")
