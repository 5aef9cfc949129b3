// Package repository holds the cache-backed draft store, the permanent meal
// store and the list-query cache.
package repository

import (
	"context"

	"github.com/google/uuid"

	"meal-server/internal/models"
)

// DraftRepository stores transient meal drafts and the per-owner index used
// to list them newest-first.
type DraftRepository interface {
	// Create writes the draft and adds it to the owner's index atomically.
	Create(ctx context.Context, draft *models.Draft) error
	// Get returns the draft or models.ErrDraftNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	// Update overwrites the draft record, preserving its remaining TTL.
	Update(ctx context.Context, draft *models.Draft) error
	// Delete removes the draft and its index entry atomically.
	Delete(ctx context.Context, draft *models.Draft) error
	// ListByUser returns up to limit drafts newest-first. cursor is the id of
	// the last draft of the previous page; an unknown cursor yields
	// models.ErrInvalidCursor.
	ListByUser(ctx context.Context, userID string, limit int, cursor string) (*models.DraftPage, error)
}

// MealStore is the permanent document store for promoted meals.
type MealStore interface {
	// Save persists the meal and returns it with the store-assigned id and
	// creation timestamp filled in.
	Save(ctx context.Context, meal *models.StoredMeal) (*models.StoredMeal, error)
	// GetByID returns the meal or models.ErrMealNotFound.
	GetByID(ctx context.Context, id string) (*models.StoredMeal, error)
	// ListByUser returns one page of the owner's meals ordered by createdAt
	// descending with document id as tiebreak. next is the id of the last
	// document of the previous page; an unknown next yields
	// models.ErrInvalidCursor.
	ListByUser(ctx context.Context, userID string, limit int, next string) (*models.MealPage, error)
}

// MealListCache caches serialized meal-list pages. Implementations must
// never fail the request: lookup errors read as a miss, write errors are
// swallowed.
type MealListCache interface {
	Get(ctx context.Context, userID string, limit int, next string) (*models.MealPage, bool)
	Set(ctx context.Context, userID string, limit int, next string, page *models.MealPage)
	// Invalidate proactively deletes every cached page for the owner.
	Invalidate(ctx context.Context, userID string)
}
