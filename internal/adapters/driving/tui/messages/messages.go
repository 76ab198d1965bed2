// Package messages defines Bubbletea message types for the TUI.
// Messages carry the results of asynchronous editor operations back to the
// model.
package messages

import (
	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// Mode identifies what the editor view is currently doing.
type Mode int

const (
	// ModeEditing is page navigation and placement.
	ModeEditing Mode = iota
	// ModeTextInput is editing the text of an annotation.
	ModeTextInput
	// ModeColorInput is editing the colour of an annotation.
	ModeColorInput
	// ModePickImage is choosing the image file for a pending placement.
	ModePickImage
	// ModeResult shows the processed file after a save.
	ModeResult
	// ModeHelp shows the keybinding reference.
	ModeHelp
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeTextInput:
		return "text_input"
	case ModeColorInput:
		return "color_input"
	case ModePickImage:
		return "pick_image"
	case ModeResult:
		return "result"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// DocumentOpened signals the document was (re)opened for editing.
type DocumentOpened struct {
	Document *domain.DocumentInfo
	Err      error
}

// ResultRestored carries a processed file remembered from a previous run.
type ResultRestored struct {
	Result *domain.ProcessedFile
	Err    error
}

// ImageSupplied signals the pending image placement completed or failed.
type ImageSupplied struct {
	Annotation *domain.Annotation
	Err        error
}

// SaveCompleted carries the outcome of a save.
type SaveCompleted struct {
	Result *domain.ProcessedFile
	Err    error
}

// DownloadCompleted carries the outcome of a download.
type DownloadCompleted struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
