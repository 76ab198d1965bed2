package services

import (
	"fmt"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// PageGeometryRegistry maps 1-based page numbers to their intrinsic size.
//
// Entries arrive in any order as pages finish rendering. A page that has not
// reported yet is simply absent; only serialization treats that as fatal.
// The registry is not safe for concurrent use; EditorService serialises access.
type PageGeometryRegistry struct {
	pages map[int]domain.PageGeometry
}

// NewPageGeometryRegistry creates an empty registry.
func NewPageGeometryRegistry() *PageGeometryRegistry {
	return &PageGeometryRegistry{pages: make(map[int]domain.PageGeometry)}
}

// Record stores or overwrites the geometry of a page.
func (r *PageGeometryRegistry) Record(page int, g domain.PageGeometry) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d", domain.ErrInvalidInput, page)
	}
	if !g.IsValid() {
		return fmt.Errorf("%w: page %d size %gx%g", domain.ErrInvalidInput, page, g.WidthPoints, g.HeightPoints)
	}
	r.pages[page] = g
	return nil
}

// Get returns the geometry of a page, or false if it was never reported.
func (r *PageGeometryRegistry) Get(page int) (domain.PageGeometry, bool) {
	g, ok := r.pages[page]
	return g, ok
}

// Len returns the number of pages that have reported.
func (r *PageGeometryRegistry) Len() int {
	return len(r.pages)
}

// Clear removes every entry.
func (r *PageGeometryRegistry) Clear() {
	clear(r.pages)
}
