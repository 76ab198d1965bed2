package services

import (
	"fmt"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// PlacementDefaults are applied to every new annotation.
type PlacementDefaults struct {
	FontSize            float64
	Color               string
	ImageWidth          int
	PreserveImageAspect bool
}

// DefaultPlacementDefaults returns the built-in annotation defaults.
func DefaultPlacementDefaults() PlacementDefaults {
	return PlacementDefaults{
		FontSize:            domain.DefaultFontSize,
		Color:               domain.DefaultColor,
		ImageWidth:          domain.DefaultImageDisplayWidth,
		PreserveImageAspect: true,
	}
}

// PlacementDefaultsFrom derives placement defaults from editor settings,
// falling back to built-in values for unset fields.
func PlacementDefaultsFrom(s domain.EditorSettings) PlacementDefaults {
	d := DefaultPlacementDefaults()
	if s.FontSize > 0 {
		d.FontSize = s.FontSize
	}
	if s.Color != "" {
		d.Color = s.Color
	}
	if s.ImageWidth > 0 {
		d.ImageWidth = s.ImageWidth
	}
	d.PreserveImageAspect = s.PreserveImageAspect
	return d
}

// PlacementController turns page clicks into annotations according to the
// armed tool. The image tool is two-phase: a click records a pending
// placement, and the annotation is created once an image is supplied.
//
// It is not safe for concurrent use; EditorService serialises access.
type PlacementController struct {
	store    *AnnotationStore
	newID    func() string
	defaults PlacementDefaults

	tool    domain.Tool
	pending *domain.PendingPlacement
}

// NewPlacementController creates a controller that appends to store.
// newID must return a unique identifier on each call.
func NewPlacementController(store *AnnotationStore, newID func() string, defaults PlacementDefaults) *PlacementController {
	return &PlacementController{
		store:    store,
		newID:    newID,
		defaults: defaults,
	}
}

// Tool returns the armed tool.
func (c *PlacementController) Tool() domain.Tool {
	return c.tool
}

// Select applies the toggle rule. Leaving the image tool drops any pending
// placement.
func (c *PlacementController) Select(next domain.Tool) (domain.Tool, error) {
	if !next.IsValid() {
		return c.tool, fmt.Errorf("%w: tool %q", domain.ErrInvalidInput, next)
	}
	c.tool = c.tool.Select(next)
	if c.tool != domain.ToolImage {
		c.pending = nil
	}
	return c.tool, nil
}

// Disarm returns to idle and drops any pending placement.
func (c *PlacementController) Disarm() {
	c.tool = domain.ToolNone
	c.pending = nil
}

// Click handles a click at (clickX, clickY) within box on a 1-based page.
// Returns nil with no error when the click created nothing.
func (c *PlacementController) Click(page int, clickX, clickY float64, box domain.BoundingBox) (*domain.Annotation, error) {
	if !c.tool.IsArmed() {
		return nil, nil
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", domain.ErrInvalidInput, page)
	}
	if !box.IsValid() {
		return nil, fmt.Errorf("%w: page box %gx%g", domain.ErrInvalidInput, box.Width, box.Height)
	}

	xp := domain.ClampPercent((clickX - box.Left) / box.Width * 100)
	yp := domain.ClampPercent((clickY - box.Top) / box.Height * 100)

	switch c.tool {
	case domain.ToolImage:
		c.pending = &domain.PendingPlacement{PageIndex: page, XPercent: xp, YPercent: yp}
		return nil, nil

	case domain.ToolText, domain.ToolSignature:
		a := c.textAnnotation(page, xp, yp)
		if err := c.store.Append(a); err != nil {
			return nil, err
		}
		c.tool = domain.ToolNone
		return &a, nil
	}

	return nil, nil
}

// Pending returns the placement waiting for an image.
func (c *PlacementController) Pending() (domain.PendingPlacement, bool) {
	if c.pending == nil {
		return domain.PendingPlacement{}, false
	}
	return *c.pending, true
}

// SupplyImage completes the pending placement. On failure the pending
// placement is kept so the caller can retry with another file.
func (c *PlacementController) SupplyImage(payload domain.ImagePayload) (*domain.Annotation, error) {
	if c.pending == nil {
		return nil, domain.ErrNoPendingPlacement
	}
	if payload.DataURI == "" {
		return nil, fmt.Errorf("%w: empty image payload", domain.ErrInvalidInput)
	}

	width := c.defaults.ImageWidth
	height := width
	if c.defaults.PreserveImageAspect {
		height = payload.AspectHeight(width)
	}

	a := domain.Annotation{
		ID:            c.newID(),
		Kind:          domain.AnnotationImage,
		PageIndex:     c.pending.PageIndex,
		XPercent:      c.pending.XPercent,
		YPercent:      c.pending.YPercent,
		ImageData:     payload.DataURI,
		DisplayWidth:  width,
		DisplayHeight: height,
	}
	if err := c.store.Append(a); err != nil {
		return nil, err
	}

	c.pending = nil
	c.tool = domain.ToolNone
	return &a, nil
}

// CancelImage abandons the pending placement. Nothing is created and the
// image tool is disarmed.
func (c *PlacementController) CancelImage() {
	c.pending = nil
	if c.tool == domain.ToolImage {
		c.tool = domain.ToolNone
	}
}

// SetDefaults replaces the defaults used for future annotations.
func (c *PlacementController) SetDefaults(d PlacementDefaults) {
	c.defaults = d
}

// Reset disarms and forgets any pending placement.
func (c *PlacementController) Reset() {
	c.Disarm()
}

func (c *PlacementController) textAnnotation(page int, xp, yp float64) domain.Annotation {
	kind, _ := c.tool.Kind()
	content := domain.DefaultTextPlaceholder
	if kind == domain.AnnotationSignature {
		content = domain.DefaultSignaturePlaceholder
	}
	return domain.Annotation{
		ID:        c.newID(),
		Kind:      kind,
		PageIndex: page,
		XPercent:  xp,
		YPercent:  yp,
		Content:   content,
		FontSize:  c.defaults.FontSize,
		Color:     c.defaults.Color,
	}
}
