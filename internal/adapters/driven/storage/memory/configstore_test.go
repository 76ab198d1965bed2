package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_GetMissing(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("backend.mode")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("backend.mode"))
	assert.Zero(t, store.GetInt("backend.timeout_seconds"))
	assert.Zero(t, store.GetFloat("editor.font_size"))
	assert.False(t, store.GetBool("editor.preserve_image_aspect"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("backend.mode", "local"))
	require.NoError(t, store.Set("backend.timeout_seconds", int64(30)))
	require.NoError(t, store.Set("backend.requests_per_second", 2))
	require.NoError(t, store.Set("editor.font_size", 14.5))
	require.NoError(t, store.Set("editor.preserve_image_aspect", true))

	assert.Equal(t, "local", store.GetString("backend.mode"))
	assert.Equal(t, 30, store.GetInt("backend.timeout_seconds"))
	assert.InDelta(t, 2.0, store.GetFloat("backend.requests_per_second"), 0.001)
	assert.InDelta(t, 14.5, store.GetFloat("editor.font_size"), 0.001)
	assert.Equal(t, 14, store.GetInt("editor.font_size"))
	assert.True(t, store.GetBool("editor.preserve_image_aspect"))
}

func TestConfigStore_WrongTypeReturnsZero(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("editor.font_size", "large"))
	require.NoError(t, store.Set("backend.mode", 3))

	assert.Zero(t, store.GetFloat("editor.font_size"))
	assert.Empty(t, store.GetString("backend.mode"))
	assert.False(t, store.GetBool("backend.mode"))
}

func TestConfigStore_SetOverwrites(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("editor.color", "#000000"))
	require.NoError(t, store.Set("editor.color", "#cc0000"))

	assert.Equal(t, "#cc0000", store.GetString("editor.color"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("backend.output_dir", "/tmp/out"))

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "/tmp/out", store.GetString("backend.output_dir"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("editor.image_width", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("editor.image_width")
		}()
	}
	wg.Wait()

	_, ok := store.Get("editor.image_width")
	assert.True(t, ok)
}
