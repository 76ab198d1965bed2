package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkavach22/kavach-edit/internal/adapters/driving/mcp"
)

func TestMCPCmd_Subcommands(t *testing.T) {
	require.Len(t, mcpCmd.Commands(), 1)
	assert.Equal(t, "serve", mcpCmd.Commands()[0].Name())
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_Long(t *testing.T) {
	assert.Contains(t, mcpServeCmd.Long, "kavach mcp serve --port 8080")
}

func TestNewMCPServer(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	server, err := newMCPServer()

	require.NoError(t, err)
	assert.NotNil(t, server)
	assert.NotNil(t, server.Handler())
}

func TestNewMCPServer_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	editorService = nil

	_, err := newMCPServer()

	assert.ErrorIs(t, err, mcp.ErrMissingEditorService)
}
