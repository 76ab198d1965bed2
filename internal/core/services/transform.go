package services

import (
	"math"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// ToAbsolute converts an annotation's percentage position into PDF points.
//
// Percentage space has its origin at the top-left of the page; PDF space has
// it at the bottom-left, so Y is flipped here and nowhere else. Rounding is
// applied after scaling and the result is clamped to the page.
func ToAbsolute(a domain.Annotation, g domain.PageGeometry) (x, y int) {
	px := domain.ClampPercent(a.XPercent)
	py := domain.ClampPercent(a.YPercent)

	x = clampPoint(math.Round(px/100*g.WidthPoints), g.WidthPoints)
	y = clampPoint(math.Round((1-py/100)*g.HeightPoints), g.HeightPoints)
	return x, y
}

// clampPoint limits v to [0, round(limit)], so the page edge itself maps to
// round(limit) exactly as the unclamped formula does.
func clampPoint(v, limit float64) int {
	upper := math.Round(limit)
	switch {
	case v < 0:
		return 0
	case v > upper:
		return int(upper)
	default:
		return int(v)
	}
}
