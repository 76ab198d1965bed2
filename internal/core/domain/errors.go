package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Editing Errors.

	// ErrNoDocument indicates no document is open for editing.
	ErrNoDocument = errors.New("no document open")

	// ErrSessionClosed indicates the editing session ended with a saved result.
	// A new document or a reset is required before placing more annotations.
	ErrSessionClosed = errors.New("editing session closed")

	// ErrNoPendingPlacement indicates an image was supplied without a prior image click.
	ErrNoPendingPlacement = errors.New("no pending image placement")

	// ErrMissingPageGeometry indicates an annotation references a page whose
	// dimensions were never reported. The whole serialization is aborted.
	ErrMissingPageGeometry = errors.New("could not process one or more pages")

	// Save and Download Errors.

	// ErrSaveInProgress indicates a save is already running for this session.
	ErrSaveInProgress = errors.New("save in progress")

	// ErrNoResult indicates there is no processed file to download.
	ErrNoResult = errors.New("no processed file")

	// ErrBackend indicates the edit backend rejected or failed a request.
	ErrBackend = errors.New("edit backend error")

	// ErrUnrecognisedResponse indicates the edit backend answered without a
	// recognisable output file identifier.
	ErrUnrecognisedResponse = errors.New("unrecognised edit response")
)
