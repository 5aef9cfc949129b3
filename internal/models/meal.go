package models

import (
	"time"

	"github.com/google/uuid"
)

// Component is one ingredient or food item inside a meal.
type Component struct {
	ID          uuid.UUID       `json:"id" firestore:"id"`
	Name        string          `json:"name" firestore:"name"`
	Brand       string          `json:"brand,omitempty" firestore:"brand,omitempty"`
	Quantity    string          `json:"quantity" firestore:"quantity"` // free text, e.g. "150 g"
	TotalWeight float64         `json:"totalWeight" firestore:"totalWeight"`
	Profile     NutrientProfile `json:"nutrientProfile" firestore:"nutrientProfile"`
}

// Meal is the structured result of generating a meal from free text.
// Profile is always derived from Components and must be recomputed whenever
// the component list changes; it is never authoritative on its own.
type Meal struct {
	Name        string          `json:"name" firestore:"name"`
	Description string          `json:"description" firestore:"description"`
	Profile     NutrientProfile `json:"nutrientProfile" firestore:"nutrientProfile"`
	Components  []Component     `json:"components" firestore:"components"`
}

// RecomputeProfile re-derives the meal-level nutrient totals from the
// current component list.
func (m *Meal) RecomputeProfile() {
	m.Profile = SumProfiles(m.Components)
}

// StoredMeal is a permanent meal record in the document store.
type StoredMeal struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"uid" firestore:"uid"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	Meal      Meal      `json:"meal" firestore:"meal"`
}

// MealPage is one page of a user's stored meals, newest first. Next is the
// id of the last returned meal, or empty when there is no further page.
type MealPage struct {
	Meals []StoredMeal `json:"meals"`
	Next  string       `json:"next,omitempty"`
}
