package generator

import (
	"context"
	"fmt"

	"meal-server/internal/models"
)

// GenerationError is the typed domain failure reported by the generation
// capability. The worker records it on the draft instead of propagating it.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("meal generation failed: %s", e.Reason)
}

// Generator converts free-text food descriptions into structured meal data.
type Generator interface {
	// GenerateMeal resolves a full meal description into a structured meal
	// with per-component nutrient profiles.
	GenerateMeal(ctx context.Context, description string) (*models.Meal, error)

	// GenerateComponent resolves a single-item description into a component,
	// using the existing meal as context for portion estimation.
	GenerateComponent(ctx context.Context, meal *models.Meal, description string) (*models.Component, error)
}
