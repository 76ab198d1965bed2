package driven

import (
	"context"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// SessionResultCache persists the processed-file handle of the last
// successful save under domain.SessionRecordKey, so the result survives a
// restart.
type SessionResultCache interface {
	// Save stores the record, replacing any previous one.
	Save(ctx context.Context, file domain.ProcessedFile) error

	// Load returns the stored record.
	// Returns domain.ErrNotFound if absent. A malformed record is discarded
	// and also reported as domain.ErrNotFound.
	Load(ctx context.Context) (*domain.ProcessedFile, error)

	// Clear removes the record. Clearing an empty cache is not an error.
	Clear(ctx context.Context) error
}
