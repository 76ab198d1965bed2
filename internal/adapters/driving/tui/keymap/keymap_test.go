package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_MovementBindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"left", km.Left, []string{"left", "h"}},
		{"right", km.Right, []string{"right", "l"}},
		{"next page", km.NextPage, []string{"pgdown", "]"}},
		{"prev page", km.PrevPage, []string{"pgup", "["}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
		})
	}
}

func TestDefaultKeyMap_ToolBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"t"}, km.TextTool.Keys())
	assert.Equal(t, []string{"s"}, km.SignatureTool.Keys())
	assert.Equal(t, []string{"i"}, km.ImageTool.Keys())
	assert.Contains(t, km.Place.Keys(), "enter")
	assert.Contains(t, km.Place.Keys(), " ")
	assert.Contains(t, km.Cancel.Keys(), "esc")
}

func TestDefaultKeyMap_NoConflictsInNormalMode(t *testing.T) {
	km := DefaultKeyMap()
	bindings := []key.Binding{
		km.Quit, km.Help, km.Cancel, km.Up, km.Down, km.Left, km.Right,
		km.NextPage, km.PrevPage, km.TextTool, km.SignatureTool, km.ImageTool,
		km.Place, km.NextAnnotation, km.PrevAnnotation, km.Edit, km.Color,
		km.Grow, km.Shrink, km.Move, km.Delete, km.Save,
	}

	seen := make(map[string]string)
	for _, b := range bindings {
		for _, k := range b.Keys() {
			prev, dup := seen[k]
			assert.False(t, dup, "key %q bound to %q and %q", k, prev, b.Help().Desc)
			seen[k] = b.Help().Desc
		}
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	assert.Len(t, km.PlacingHelp(), 2)
	assert.Len(t, km.InputHelp(), 2)
	assert.Len(t, km.ResultHelp(), 3)
	assert.Len(t, km.FullHelp(), 4)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("tab", km.NextAnnotation))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Quit))
}
