package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingEditorService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingEditorService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingEditorService.Error(), "editor service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
