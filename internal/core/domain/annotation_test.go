package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAnnotationKind_IsValid tests kind validation
func TestAnnotationKind_IsValid(t *testing.T) {
	tests := []struct {
		kind    AnnotationKind
		valid   bool
		textual bool
	}{
		{AnnotationText, true, true},
		{AnnotationSignature, true, true},
		{AnnotationImage, true, false},
		{AnnotationKind("shape"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.kind.IsValid())
			assert.Equal(t, tt.textual, tt.kind.IsTextual())
		})
	}
}

// TestAnnotationPatch_Apply tests partial updates
func TestAnnotationPatch_Apply(t *testing.T) {
	base := Annotation{
		ID:       "a1",
		Kind:     AnnotationText,
		Content:  "hello",
		FontSize: 20,
		Color:    "#000000",
		XPercent: 10,
		YPercent: 20,
	}

	content := "world"
	color := "#ff0000"
	size := 14.0
	x := 150.0
	y := -5.0

	t.Run("empty patch leaves annotation alone", func(t *testing.T) {
		p := AnnotationPatch{}
		assert.True(t, p.IsEmpty())
		assert.Equal(t, base, p.Apply(base))
	})

	t.Run("content only", func(t *testing.T) {
		got := AnnotationPatch{Content: &content}.Apply(base)
		assert.Equal(t, "world", got.Content)
		assert.Equal(t, "#000000", got.Color)
		assert.Equal(t, "hello", base.Content)
	})

	t.Run("all fields with clamping", func(t *testing.T) {
		p := AnnotationPatch{Content: &content, Color: &color, FontSize: &size, XPercent: &x, YPercent: &y}
		assert.False(t, p.IsEmpty())

		got := p.Apply(base)
		assert.Equal(t, "world", got.Content)
		assert.Equal(t, "#ff0000", got.Color)
		assert.Equal(t, 14.0, got.FontSize)
		assert.Equal(t, 100.0, got.XPercent)
		assert.Equal(t, 0.0, got.YPercent)
	})
}

// TestClampPercent tests the percentage clamp
func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-1))
	assert.Equal(t, 0.0, ClampPercent(math.NaN()))
	assert.Equal(t, 42.5, ClampPercent(42.5))
	assert.Equal(t, 100.0, ClampPercent(100.0001))
	assert.Equal(t, 100.0, ClampPercent(math.Inf(1)))
}

// TestPageGeometry_IsValid tests geometry validation
func TestPageGeometry_IsValid(t *testing.T) {
	assert.True(t, PageGeometry{WidthPoints: 612, HeightPoints: 792}.IsValid())
	assert.False(t, PageGeometry{WidthPoints: 0, HeightPoints: 792}.IsValid())
	assert.False(t, PageGeometry{WidthPoints: 612, HeightPoints: -1}.IsValid())
	assert.False(t, PageGeometry{WidthPoints: math.Inf(1), HeightPoints: 792}.IsValid())
	assert.False(t, PageGeometry{WidthPoints: math.NaN(), HeightPoints: 792}.IsValid())
}

// TestBoundingBox_IsValid tests bounding box validation
func TestBoundingBox_IsValid(t *testing.T) {
	assert.True(t, BoundingBox{Left: 0, Top: 0, Width: 100, Height: 200}.IsValid())
	assert.True(t, BoundingBox{Left: -50, Top: 30, Width: 1, Height: 1}.IsValid())
	assert.False(t, BoundingBox{Width: 0, Height: 10}.IsValid())
	assert.False(t, BoundingBox{Width: 10, Height: 10, Left: math.NaN()}.IsValid())
}
