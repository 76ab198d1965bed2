package driven

import "github.com/devkavach22/kavach-edit/internal/core/domain"

// PlanSource reads placement plans.
type PlanSource interface {
	// Load reads and validates the plan at path. Relative image paths are
	// resolved against the plan's directory.
	Load(path string) (*domain.PlacementPlan, error)
}
