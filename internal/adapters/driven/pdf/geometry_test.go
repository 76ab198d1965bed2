package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// TestGeometryReader_PageGeometry tests per-page sizes
func TestGeometryReader_PageGeometry(t *testing.T) {
	path := buildPDF(t, letter, a4)

	pages, err := NewGeometryReader().PageGeometry(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.InDelta(t, 612, pages[0].WidthPoints, 0.01)
	assert.InDelta(t, 792, pages[0].HeightPoints, 0.01)
	assert.InDelta(t, 595, pages[1].WidthPoints, 0.01)
	assert.InDelta(t, 842, pages[1].HeightPoints, 0.01)
}

// TestGeometryReader_Errors tests missing and invalid files
func TestGeometryReader_Errors(t *testing.T) {
	r := NewGeometryReader()

	_, err := r.PageGeometry(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.pdf")
	require.NoError(t, os.WriteFile(junk, []byte("not a pdf"), 0600))
	_, err = r.PageGeometry(context.Background(), junk)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.PageGeometry(ctx, junk)
	assert.ErrorIs(t, err, context.Canceled)
}
