package driven

import (
	"context"
	"io"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// EditBackend applies edit instructions to a source PDF and serves the result.
type EditBackend interface {
	// Edit uploads the source document with its instructions.
	// Returns the handle of the produced file.
	// Returns domain.ErrUnrecognisedResponse if no output file can be identified.
	Edit(ctx context.Context, req domain.EditRequest) (*domain.ProcessedFile, error)

	// Download streams a previously produced file into w.
	// fileName is the bare name; any directory prefix is already stripped.
	Download(ctx context.Context, fileName string, w io.Writer) error
}
