package driven

import (
	"context"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// PageGeometrySource reports the intrinsic size of every page of a PDF.
type PageGeometrySource interface {
	// PageGeometry returns one entry per page; index 0 is page 1.
	PageGeometry(ctx context.Context, path string) ([]domain.PageGeometry, error)
}
