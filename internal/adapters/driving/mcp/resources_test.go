package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPage(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int
	}{
		{
			name:     "valid page URI",
			uri:      "kavach://pages/3/annotations",
			expected: 3,
		},
		{
			name:     "invalid prefix",
			uri:      "file://pages/3/annotations",
			expected: 0,
		},
		{
			name:     "missing annotations suffix",
			uri:      "kavach://pages/3",
			expected: 0,
		},
		{
			name:     "non-numeric page",
			uri:      "kavach://pages/first/annotations",
			expected: 0,
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPage(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSessionResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty session", func(t *testing.T) {
		env := newTestEnv(t)

		result, err := env.server.handleSessionResource(ctx, makeReadResourceRequest("kavach://session"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"phase": "empty"`)
		assert.NotContains(t, result.Contents[0].Text, `"document"`)
	})

	t.Run("open document with pending image", func(t *testing.T) {
		env := newTestEnv(t)
		env.open(t)
		placeText(t, env, 1, 10, 10)
		_, _, err := env.server.handleSelectTool(ctx, nil, ToolInput{Tool: "image"})
		require.NoError(t, err)
		_, _, err = env.server.handleClick(ctx, nil, ClickInput{Page: 2, X: 40, Y: 60})
		require.NoError(t, err)

		result, err := env.server.handleSessionResource(ctx, makeReadResourceRequest("kavach://session"))

		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"phase": "editing"`)
		assert.Contains(t, text, `"tool": "image"`)
		assert.Contains(t, text, `"name": "form.pdf"`)
		assert.Contains(t, text, `"annotations": 1`)
		assert.Contains(t, text, `"PageIndex": 2`)
	})
}

func TestServer_handleResultResource(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.server.handleResultResource(ctx, makeReadResourceRequest("kavach://result"))
	require.Error(t, err)

	env.open(t)
	_, _, err = env.server.handleSave(ctx, nil, EmptyInput{})
	require.NoError(t, err)

	result, err := env.server.handleResultResource(ctx, makeReadResourceRequest("kavach://result"))

	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "form_edited_42.pdf")
}

func TestServer_handlePageAnnotationsResource(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.open(t)
	placeText(t, env, 1, 10, 10)
	placeText(t, env, 2, 20, 20)

	t.Run("invalid URI returns not found", func(t *testing.T) {
		_, err := env.server.handlePageAnnotationsResource(ctx, makeReadResourceRequest("kavach://invalid/uri"))
		require.Error(t, err)
	})

	t.Run("returns page annotations", func(t *testing.T) {
		result, err := env.server.handlePageAnnotationsResource(ctx, makeReadResourceRequest("kavach://pages/2/annotations"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"count": 1`)
		assert.Contains(t, result.Contents[0].Text, `"page": 2`)
	})

	t.Run("page without annotations", func(t *testing.T) {
		result, err := env.server.handlePageAnnotationsResource(ctx, makeReadResourceRequest("kavach://pages/5/annotations"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"count": 0`)
	})
}
