package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

func seedResult(t *testing.T) {
	t.Helper()
	require.NoError(t, current.cache.Save(context.Background(), domain.ProcessedFile{
		FileName:     "contract_edited_1.pdf",
		OriginalName: "contract.pdf",
	}))
}

func TestSessionCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range sessionCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["show"])
	assert.True(t, names["download"])
	assert.True(t, names["clear"])
}

func TestSessionShow_NoResult(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	output, err := execute(t, "session", "show")

	require.NoError(t, err)
	assert.Contains(t, output, "No processed file.")
}

func TestSessionShow_CachedResult(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedResult(t)

	output, err := execute(t, "session", "show")

	require.NoError(t, err)
	assert.Contains(t, output, "File: contract_edited_1.pdf")
	assert.Contains(t, output, "Original: contract.pdf")
}

func TestSessionDownload_DefaultsToResultName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedResult(t)

	t.Chdir(t.TempDir())

	output, err := execute(t, "session", "download", "--out", "")
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote contract_edited_1.pdf")

	data, err := os.ReadFile("contract_edited_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF contract_edited_1.pdf", string(data))
}

func TestSessionDownload_ExplicitPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedResult(t)

	out := filepath.Join(t.TempDir(), "copy.pdf")
	output, err := execute(t, "session", "download", "--out", out)

	require.NoError(t, err)
	assert.Contains(t, output, "Wrote "+out)
	assert.FileExists(t, out)
}

func TestSessionDownload_NoResult(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "session", "download", "--out", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no processed file")
}

func TestSessionClear(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedResult(t)

	output, err := execute(t, "session", "clear")
	require.NoError(t, err)
	assert.Contains(t, output, "Session cleared.")

	_, err = current.editor.LastResult(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoResult)
}

func TestSessionCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	editorService = nil

	for _, sub := range []string{"show", "clear"} {
		_, err := execute(t, "session", sub)
		require.Error(t, err, sub)
		assert.Contains(t, err.Error(), "editor service not configured")
	}
}
