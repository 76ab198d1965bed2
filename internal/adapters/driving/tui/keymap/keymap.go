// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help overlay.
	Help key.Binding

	// Cancel disarms the tool or abandons the current input.
	Cancel key.Binding

	// Cursor movement on the page.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// NextPage and PrevPage change the visible page.
	NextPage key.Binding
	PrevPage key.Binding

	// Tool selection. Selecting the armed tool again disarms it.
	TextTool      key.Binding
	SignatureTool key.Binding
	ImageTool     key.Binding

	// Place clicks the page at the cursor.
	Place key.Binding

	// NextAnnotation and PrevAnnotation cycle the selection on the page.
	NextAnnotation key.Binding
	PrevAnnotation key.Binding

	// Edit changes the text of the selected annotation.
	Edit key.Binding

	// Color changes the colour of the selected annotation.
	Color key.Binding

	// Grow and Shrink change the font size of the selected annotation.
	Grow   key.Binding
	Shrink key.Binding

	// Move relocates the selected annotation to the cursor.
	Move key.Binding

	// Delete removes the selected annotation.
	Delete key.Binding

	// Save sends the document to the edit backend.
	Save key.Binding

	// Download writes the processed file to the working directory.
	Download key.Binding

	// Restart opens the document again for a new session.
	Restart key.Binding

	// Confirm commits an input.
	Confirm key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("[", "prev page"),
		),
		TextTool: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "text"),
		),
		SignatureTool: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "signature"),
		),
		ImageTool: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "image"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place"),
		),
		NextAnnotation: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next mark"),
		),
		PrevAnnotation: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev mark"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit text"),
		),
		Color: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "colour"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "bigger"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "smaller"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move here"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Restart: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "edit again"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TextTool, k.SignatureTool, k.ImageTool, k.Save, k.Help, k.Quit}
}

// PlacingHelp returns keybindings while a tool is armed.
func (k *KeyMap) PlacingHelp() []key.Binding {
	return []key.Binding{k.Place, k.Cancel}
}

// InputHelp returns keybindings while an input is focused.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// ResultHelp returns keybindings for the result screen.
func (k *KeyMap) ResultHelp() []key.Binding {
	return []key.Binding{k.Download, k.Restart, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextPage, k.PrevPage},
		{k.TextTool, k.SignatureTool, k.ImageTool, k.Place, k.Cancel},
		{k.NextAnnotation, k.PrevAnnotation, k.Edit, k.Color, k.Grow, k.Shrink, k.Move, k.Delete},
		{k.Save, k.Download, k.Restart, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
