package pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
)

// Ensure GeometryReader implements the interface.
var _ driven.PageGeometrySource = (*GeometryReader)(nil)

// GeometryReader reads page sizes from PDF files.
type GeometryReader struct {
	conf *model.Configuration
}

// NewGeometryReader creates a new geometry reader.
func NewGeometryReader() *GeometryReader {
	return &GeometryReader{conf: newConfiguration()}
}

// PageGeometry returns the size of every page in points.
func (r *GeometryReader) PageGeometry(ctx context.Context, path string) ([]domain.PageGeometry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	dims, err := api.PageDims(f, r.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: read page sizes: %v", domain.ErrInvalidInput, err)
	}

	pages := make([]domain.PageGeometry, len(dims))
	for i, d := range dims {
		pages[i] = domain.PageGeometry{WidthPoints: d.Width, HeightPoints: d.Height}
	}
	return pages, nil
}

// newConfiguration returns a pdfcpu configuration tolerant of the
// slightly malformed files real users upload.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
