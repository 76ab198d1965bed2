package driven

import (
	"context"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// MaxImageBytes is the largest image file an ImageLoader accepts.
const MaxImageBytes = 10 << 20

// ImageLoader reads an image file into an encoded payload.
type ImageLoader interface {
	// Load reads and encodes the image at path.
	// Returns domain.ErrInvalidInput for non-image or oversized files.
	Load(ctx context.Context, path string) (domain.ImagePayload, error)
}
