package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
)

// Ensure PlanStore implements the interface.
var _ driven.PlanSource = (*PlanStore)(nil)

// PlanStore loads placement plans from TOML files.
//
// A plan looks like:
//
//	[[page]]
//	number = 1
//	width = 612
//	height = 792
//
//	[[annotation]]
//	kind = "text"
//	page = 1
//	x = 50.0
//	y = 10.0
//	content = "Approved"
//	font_size = 14
//	color = "#cc0000"
//
//	[[annotation]]
//	kind = "image"
//	page = 2
//	x = 70
//	y = 85
//	image = "signature.png"
type PlanStore struct{}

// NewPlanStore creates a new plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{}
}

type planFile struct {
	Pages       []planPage       `toml:"page"`
	Annotations []planAnnotation `toml:"annotation"`
}

type planPage struct {
	Number int     `toml:"number"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type planAnnotation struct {
	Kind     string  `toml:"kind"`
	Page     int     `toml:"page"`
	X        float64 `toml:"x"`
	Y        float64 `toml:"y"`
	Content  string  `toml:"content"`
	FontSize float64 `toml:"font_size"`
	Color    string  `toml:"color"`
	Image    string  `toml:"image"`
}

// Load reads and validates the plan at path.
func (s *PlanStore) Load(path string) (*domain.PlacementPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var raw planFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%w: %s:%d:%d: %s", domain.ErrInvalidInput, filepath.Base(path), row, col, decodeErr.Error())
		}
		return nil, fmt.Errorf("%w: parse plan: %v", domain.ErrInvalidInput, err)
	}

	plan := raw.toDomain(filepath.Dir(path))
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (f planFile) toDomain(baseDir string) *domain.PlacementPlan {
	plan := &domain.PlacementPlan{}

	for _, p := range f.Pages {
		plan.Pages = append(plan.Pages, domain.PlanPage{
			Number:   p.Number,
			Geometry: domain.PageGeometry{WidthPoints: p.Width, HeightPoints: p.Height},
		})
	}

	for _, a := range f.Annotations {
		image := a.Image
		if image != "" && !filepath.IsAbs(image) {
			image = filepath.Join(baseDir, image)
		}
		plan.Entries = append(plan.Entries, domain.PlanEntry{
			Kind:      domain.AnnotationKind(strings.ToLower(strings.TrimSpace(a.Kind))),
			Page:      a.Page,
			XPercent:  a.X,
			YPercent:  a.Y,
			Content:   a.Content,
			FontSize:  a.FontSize,
			Color:     a.Color,
			ImagePath: image,
		})
	}

	return plan
}
