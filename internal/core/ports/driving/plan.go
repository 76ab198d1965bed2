package driving

import (
	"context"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// PlanService applies scripted placement plans to the open document.
type PlanService interface {
	// Apply loads the plan at path and places every entry through the editor.
	// Returns the annotations created, in plan order.
	Apply(ctx context.Context, path string) ([]domain.Annotation, error)

	// ApplyPlan places every entry of an already loaded plan.
	ApplyPlan(ctx context.Context, plan *domain.PlacementPlan) ([]domain.Annotation, error)
}
