// Package imagefile provides an ImageLoader that reads images from disk.
package imagefile

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.ImageLoader = (*Loader)(nil)

// Loader reads image files into data URI payloads.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader with the default size limit.
func NewLoader() *Loader {
	return &Loader{maxBytes: driven.MaxImageBytes}
}

// Load reads the image at path, checks it decodes, and encodes it.
func (l *Loader) Load(ctx context.Context, path string) (domain.ImagePayload, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImagePayload{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.ImagePayload{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, l.maxBytes+1))
	if err != nil {
		return domain.ImagePayload{}, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return domain.ImagePayload{}, fmt.Errorf("%w: image larger than %d bytes", domain.ErrInvalidInput, l.maxBytes)
	}

	mediaType := http.DetectContentType(data)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.ImagePayload{}, fmt.Errorf("%w: %s is not a supported image", domain.ErrInvalidInput, mediaType)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = "image/" + format
	}

	return domain.ImagePayload{
		DataURI:   domain.EncodeDataURI(mediaType, data),
		MediaType: mediaType,
		WidthPx:   cfg.Width,
		HeightPx:  cfg.Height,
	}, nil
}
