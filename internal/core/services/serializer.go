package services

import (
	"fmt"
	"strings"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// BuildInstructions converts every annotation into an edit instruction, in
// store order. If any annotation's page has no recorded geometry the whole
// build fails and no instructions are returned.
func BuildInstructions(store *AnnotationStore, registry *PageGeometryRegistry) ([]domain.EditInstruction, error) {
	out := make([]domain.EditInstruction, 0, store.Len())

	for _, a := range store.items {
		g, ok := registry.Get(a.PageIndex)
		if !ok {
			return nil, fmt.Errorf("page %d: %w", a.PageIndex, domain.ErrMissingPageGeometry)
		}

		inst, err := instructionFor(a, g)
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", a.ID, err)
		}
		out = append(out, inst)
	}

	return out, nil
}

func instructionFor(a domain.Annotation, g domain.PageGeometry) (domain.EditInstruction, error) {
	x, y := ToAbsolute(a, g)

	switch a.Kind {
	case domain.AnnotationText, domain.AnnotationSignature:
		return textInstruction(a, x, y)
	case domain.AnnotationImage:
		return imageInstruction(a, x, y)
	default:
		return domain.EditInstruction{}, fmt.Errorf("%w: annotation kind %q", domain.ErrInvalidInput, a.Kind)
	}
}

func textInstruction(a domain.Annotation, x, y int) (domain.EditInstruction, error) {
	value := a.Content
	if strings.TrimSpace(value) == "" {
		value = domain.FallbackText
	}

	size := a.FontSize
	if size <= 0 {
		size = domain.DefaultFontSize
	}

	hex := a.Color
	if hex == "" {
		hex = domain.DefaultColor
	}
	color, err := domain.ParseHexColor(hex)
	if err != nil {
		return domain.EditInstruction{}, err
	}

	return domain.EditInstruction{
		Type:      domain.InstructionText,
		Value:     value,
		X:         x,
		Y:         y,
		PageIndex: a.PageIndex - 1,
		Size:      size,
		Color:     &color,
	}, nil
}

func imageInstruction(a domain.Annotation, x, y int) (domain.EditInstruction, error) {
	if a.ImageData == "" {
		return domain.EditInstruction{}, fmt.Errorf("%w: image annotation has no data", domain.ErrInvalidInput)
	}

	width := a.DisplayWidth
	if width <= 0 {
		width = domain.DefaultImageDisplayWidth
	}
	height := a.DisplayHeight
	if height <= 0 {
		height = width
	}

	return domain.EditInstruction{
		Type:      domain.InstructionImage,
		Src:       a.ImageData,
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		PageIndex: a.PageIndex - 1,
	}, nil
}
