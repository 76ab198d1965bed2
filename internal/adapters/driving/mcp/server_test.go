package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil editor service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingEditorService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		env := newTestEnv(t)
		assert.NotNil(t, env.server)
		assert.NotNil(t, env.server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil editor service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingEditorService)
	})

	t.Run("editor only is valid", func(t *testing.T) {
		env := newTestEnv(t)
		ports := &Ports{Editor: env.editor}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		env := newTestEnv(t)
		ports := &Ports{Editor: env.editor, Plan: &mockPlanService{}}
		assert.NoError(t, ports.Validate())
	})
}
