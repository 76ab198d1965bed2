package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// TestMode_String tests mode names
func TestMode_String(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeEditing, "editing"},
		{ModeTextInput, "text_input"},
		{ModeColorInput, "color_input"},
		{ModePickImage, "pick_image"},
		{ModeResult, "result"},
		{ModeHelp, "help"},
		{Mode(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.String())
		})
	}
}

// TestSaveCompleted tests the SaveCompleted message type
func TestSaveCompleted(t *testing.T) {
	t.Run("with result", func(t *testing.T) {
		msg := SaveCompleted{Result: &domain.ProcessedFile{FileName: "out.pdf"}}
		assert.Equal(t, "out.pdf", msg.Result.FileName)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := SaveCompleted{Err: domain.ErrBackend}
		assert.Nil(t, msg.Result)
		assert.ErrorIs(t, msg.Err, domain.ErrBackend)
	})
}

// TestImageSupplied tests the ImageSupplied message type
func TestImageSupplied(t *testing.T) {
	msg := ImageSupplied{Err: errors.New("not an image")}
	assert.Nil(t, msg.Annotation)
	assert.EqualError(t, msg.Err, "not an image")
}
