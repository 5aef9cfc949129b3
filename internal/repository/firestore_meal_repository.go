package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"meal-server/internal/models"
)

const mealsCollection = "meals"

// Compile-time check to ensure firestoreMealRepository implements MealStore
var _ MealStore = (*firestoreMealRepository)(nil)

type firestoreMealRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreMealRepository creates a Firestore-backed MealStore.
func NewFirestoreMealRepository(client *firestore.Client, logger *zap.Logger) MealStore {
	return &firestoreMealRepository{
		client: client,
		logger: logger.Named("FirestoreMealRepo"),
	}
}

// Save writes the meal and reads it back so the caller gets the
// server-assigned creation timestamp.
func (r *firestoreMealRepository) Save(ctx context.Context, meal *models.StoredMeal) (*models.StoredMeal, error) {
	doc := r.client.Collection(mealsCollection).NewDoc()
	if _, err := doc.Set(ctx, meal); err != nil {
		r.logger.Error("Failed to save meal to firestore", zap.String("userID", meal.UserID), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to save meal: %v", models.ErrUpstreamUnavailable, err)
	}

	snap, err := doc.Get(ctx)
	if err != nil {
		r.logger.Error("Failed to read back saved meal", zap.String("mealID", doc.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: meal was saved but could not be retrieved: %v", models.ErrUpstreamUnavailable, err)
	}

	var saved models.StoredMeal
	if err := snap.DataTo(&saved); err != nil {
		return nil, fmt.Errorf("failed to decode saved meal %s: %w", doc.ID, err)
	}
	saved.ID = doc.ID
	return &saved, nil
}

func (r *firestoreMealRepository) GetByID(ctx context.Context, id string) (*models.StoredMeal, error) {
	snap, err := r.client.Collection(mealsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrMealNotFound
		}
		r.logger.Error("Failed to get meal from firestore", zap.String("mealID", id), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to get meal: %v", models.ErrUpstreamUnavailable, err)
	}

	var meal models.StoredMeal
	if err := snap.DataTo(&meal); err != nil {
		return nil, fmt.Errorf("failed to decode meal %s: %w", id, err)
	}
	meal.ID = snap.Ref.ID
	return &meal, nil
}

// ListByUser orders by createdAt descending with the document id as tiebreak,
// matching the cursor contract: next is the id of the last returned document.
func (r *firestoreMealRepository) ListByUser(ctx context.Context, userID string, limit int, next string) (*models.MealPage, error) {
	coll := r.client.Collection(mealsCollection)
	query := coll.Where("uid", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	if next != "" {
		snap, err := coll.Doc(next).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, models.ErrInvalidCursor
			}
			r.logger.Error("Failed to resolve meal list cursor", zap.String("cursor", next), zap.Error(err))
			return nil, fmt.Errorf("%w: failed to resolve cursor: %v", models.ErrUpstreamUnavailable, err)
		}
		query = query.StartAfter(snap.Data()["createdAt"], snap.Ref.ID)
	}

	iter := query.Limit(limit).Documents(ctx)
	defer iter.Stop()

	page := &models.MealPage{Meals: make([]models.StoredMeal, 0, limit)}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			r.logger.Error("Firestore meal query failed", zap.String("userID", userID), zap.Error(err))
			return nil, fmt.Errorf("%w: failed to list meals: %v", models.ErrUpstreamUnavailable, err)
		}

		var meal models.StoredMeal
		if err := snap.DataTo(&meal); err != nil {
			r.logger.Warn("Skipping undecodable meal document", zap.String("mealID", snap.Ref.ID), zap.Error(err))
			continue
		}
		meal.ID = snap.Ref.ID
		page.Meals = append(page.Meals, meal)
	}

	if len(page.Meals) == limit {
		page.Next = page.Meals[len(page.Meals)-1].ID
	}
	return page, nil
}
