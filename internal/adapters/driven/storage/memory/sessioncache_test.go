package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

func TestSessionCache_Load_Empty(t *testing.T) {
	cache := NewSessionCache()

	file, err := cache.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, file)
}

func TestSessionCache_SaveLoad(t *testing.T) {
	ctx := context.Background()
	cache := NewSessionCache()

	err := cache.Save(ctx, domain.ProcessedFile{FileName: "doc_edited_1.pdf", OriginalName: "doc.pdf"})
	require.NoError(t, err)

	file, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "doc_edited_1.pdf", file.FileName)
	assert.Equal(t, "doc.pdf", file.OriginalName)
}

func TestSessionCache_Clear(t *testing.T) {
	ctx := context.Background()
	cache := NewSessionCache()
	require.NoError(t, cache.Save(ctx, domain.ProcessedFile{FileName: "a.pdf"}))

	require.NoError(t, cache.Clear(ctx))
	require.NoError(t, cache.Clear(ctx))

	_, err := cache.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionCache_Load_MalformedIsDiscarded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"wrong shape", `["a"]`},
		{"missing file name", `{"originalName":"doc.pdf"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cache := NewSessionCache()
			cache.SetRaw([]byte(tt.raw))

			_, err := cache.Load(ctx)
			assert.ErrorIs(t, err, domain.ErrNotFound)

			cache.mu.RLock()
			_, present := cache.records[domain.SessionRecordKey]
			cache.mu.RUnlock()
			assert.False(t, present)
		})
	}
}
