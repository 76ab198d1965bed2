package domain

import "math"

// PageGeometry is the intrinsic size of a page in PDF points, as reported
// by the renderer when the page finishes loading.
type PageGeometry struct {
	WidthPoints  float64
	HeightPoints float64
}

// IsValid returns true if both dimensions are finite and positive.
func (g PageGeometry) IsValid() bool {
	return isPositive(g.WidthPoints) && isPositive(g.HeightPoints)
}

// BoundingBox is the on-screen box of a rendered page at click time.
// Units are whatever the surface uses (pixels, terminal cells).
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// IsValid returns true if the box has a positive finite area.
func (b BoundingBox) IsValid() bool {
	return isFinite(b.Left) && isFinite(b.Top) && isPositive(b.Width) && isPositive(b.Height)
}

// PendingPlacement records where an image click landed while the image
// file is still being chosen.
type PendingPlacement struct {
	PageIndex int
	XPercent  float64
	YPercent  float64
}

// DocumentInfo describes the document open for editing.
type DocumentInfo struct {
	Path      string
	Name      string
	PageCount int
}

// ClampPercent limits v to [0, 100]. NaN collapses to 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isPositive(v float64) bool {
	return isFinite(v) && v > 0
}
