package services

import (
	"context"
	"fmt"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// Ensure PlanService implements the interface.
var _ driving.PlanService = (*PlanService)(nil)

// percentBox is the page box used for scripted clicks, so click
// coordinates are the plan percentages themselves.
var percentBox = domain.BoundingBox{Width: 100, Height: 100}

// PlanService drives the editor from placement plans, using the same
// placement path as interactive clicks.
type PlanService struct {
	editor driving.EditorService
	plans  driven.PlanSource
}

// NewPlanService creates a new plan service.
func NewPlanService(editor driving.EditorService, plans driven.PlanSource) *PlanService {
	return &PlanService{editor: editor, plans: plans}
}

// Apply loads the plan at path and applies it.
func (s *PlanService) Apply(ctx context.Context, path string) ([]domain.Annotation, error) {
	plan, err := s.plans.Load(path)
	if err != nil {
		return nil, err
	}
	return s.ApplyPlan(ctx, plan)
}

// ApplyPlan records any page size overrides and then places each entry.
// It stops at the first failing entry; annotations placed before it remain.
func (s *PlanService) ApplyPlan(ctx context.Context, plan *domain.PlacementPlan) ([]domain.Annotation, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if _, ok := s.editor.Document(); !ok {
		return nil, domain.ErrNoDocument
	}

	for _, p := range plan.Pages {
		if err := s.editor.RecordPageGeometry(p.Number, p.Geometry); err != nil {
			return nil, fmt.Errorf("plan page %d: %w", p.Number, err)
		}
	}

	created := make([]domain.Annotation, 0, len(plan.Entries))
	for i, e := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		a, err := s.place(ctx, e)
		if err != nil {
			return created, fmt.Errorf("plan entry %d: %w", i+1, err)
		}
		created = append(created, *a)
	}

	logger.Info("applied %d plan entries", len(created))
	return created, nil
}

func (s *PlanService) place(ctx context.Context, e domain.PlanEntry) (*domain.Annotation, error) {
	tool := toolFor(e.Kind)

	// Disarm first so selecting the same tool twice never toggles it off.
	s.editor.Disarm()
	if _, err := s.editor.SelectTool(tool); err != nil {
		return nil, err
	}

	a, err := s.editor.ClickPage(e.Page, e.XPercent, e.YPercent, percentBox)
	if err != nil {
		s.editor.Disarm()
		return nil, err
	}

	if e.Kind == domain.AnnotationImage {
		a, err = s.editor.SupplyImage(ctx, e.ImagePath)
		if err != nil {
			s.editor.CancelImage()
			return nil, err
		}
		return a, nil
	}

	if a == nil {
		return nil, fmt.Errorf("%w: click created nothing", domain.ErrInvalidInput)
	}

	patch := domain.AnnotationPatch{}
	if e.Content != "" {
		patch.Content = &e.Content
	}
	if e.FontSize > 0 {
		patch.FontSize = &e.FontSize
	}
	if e.Color != "" {
		patch.Color = &e.Color
	}
	if patch.IsEmpty() {
		return a, nil
	}
	return s.editor.UpdateAnnotation(a.ID, patch)
}

func toolFor(kind domain.AnnotationKind) domain.Tool {
	switch kind {
	case domain.AnnotationImage:
		return domain.ToolImage
	case domain.AnnotationSignature:
		return domain.ToolSignature
	default:
		return domain.ToolText
	}
}
