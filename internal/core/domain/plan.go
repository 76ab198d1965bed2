package domain

import "fmt"

// PlacementPlan is a scripted set of annotations applied to a document
// without interactive clicks.
type PlacementPlan struct {
	// Pages overrides the geometry read from the document.
	Pages []PlanPage

	Entries []PlanEntry
}

// PlanPage sets the size of one 1-based page.
type PlanPage struct {
	Number   int
	Geometry PageGeometry
}

// PlanEntry is one annotation of a plan. Coordinates are percentages of
// the page measured from its top-left corner.
type PlanEntry struct {
	Kind     AnnotationKind
	Page     int // 1-based
	XPercent float64
	YPercent float64

	// Content, FontSize and Color apply to text and signature entries.
	// Zero values keep the editor defaults.
	Content  string
	FontSize float64
	Color    string

	// ImagePath is the image file of an image entry.
	ImagePath string
}

// Validate checks every page and entry of the plan.
func (p PlacementPlan) Validate() error {
	for i, pg := range p.Pages {
		if pg.Number < 1 {
			return fmt.Errorf("%w: plan page %d: number must be >= 1", ErrInvalidInput, i)
		}
		if !pg.Geometry.IsValid() {
			return fmt.Errorf("%w: plan page %d: size must be positive", ErrInvalidInput, pg.Number)
		}
	}

	for i, e := range p.Entries {
		if err := e.validate(); err != nil {
			return fmt.Errorf("plan entry %d: %w", i+1, err)
		}
	}
	return nil
}

func (e PlanEntry) validate() error {
	if !e.Kind.IsValid() {
		return fmt.Errorf("%w: kind %q", ErrInvalidInput, e.Kind)
	}
	if e.Page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalidInput, e.Page)
	}
	if e.XPercent < 0 || e.XPercent > 100 || e.YPercent < 0 || e.YPercent > 100 {
		return fmt.Errorf("%w: position %g,%g outside 0-100", ErrInvalidInput, e.XPercent, e.YPercent)
	}

	if e.Kind == AnnotationImage {
		if e.ImagePath == "" {
			return fmt.Errorf("%w: image entry without image", ErrInvalidInput)
		}
		return nil
	}

	if e.FontSize < 0 {
		return fmt.Errorf("%w: font size %g", ErrInvalidInput, e.FontSize)
	}
	if e.Color != "" {
		if _, err := ParseHexColor(e.Color); err != nil {
			return err
		}
	}
	return nil
}
