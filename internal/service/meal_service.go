package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-server/internal/models"
	"meal-server/internal/notifier"
	"meal-server/internal/repository"
)

const (
	defaultMealPageSize = 10
	maxMealPageSize     = 20
)

// MealService manages permanent meal records: promotion from drafts and
// cached listing.
type MealService interface {
	// SaveFromDraft promotes a completed draft into the permanent store and
	// retires the draft.
	SaveFromDraft(ctx context.Context, userID string, draftID uuid.UUID) (*models.StoredMeal, error)
	// ListMeals returns one page of the owner's meals, newest first. The
	// second result reports whether the page came from the cache.
	ListMeals(ctx context.Context, userID string, limit int, next string) (*models.MealPage, bool, error)
	GetMeal(ctx context.Context, userID, mealID string) (*models.StoredMeal, error)
}

type mealServiceImpl struct {
	drafts   repository.DraftRepository
	meals    repository.MealStore
	cache    repository.MealListCache
	notifier *notifier.Notifier
	logger   *zap.Logger
}

// NewMealService creates a new instance of MealService.
func NewMealService(
	drafts repository.DraftRepository,
	meals repository.MealStore,
	cache repository.MealListCache,
	n *notifier.Notifier,
	logger *zap.Logger,
) MealService {
	return &mealServiceImpl{
		drafts:   drafts,
		meals:    meals,
		cache:    cache,
		notifier: n,
		logger:   logger.Named("MealService"),
	}
}

// SaveFromDraft validates the draft, persists its meal and retires the
// draft. Once the permanent record exists the promotion never rolls back:
// failing to delete the draft afterwards only leaves an orphan to clean up.
func (s *mealServiceImpl) SaveFromDraft(ctx context.Context, userID string, draftID uuid.UUID) (*models.StoredMeal, error) {
	log := s.logger.With(zap.String("draftID", draftID.String()), zap.String("userID", userID))
	log.Info("Promoting draft to permanent meal")

	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		log.Warn("Promotion denied, draft owned by another user")
		return nil, models.ErrForbidden
	}
	if draft.Status != models.StatusComplete || draft.Meal == nil {
		log.Warn("Promotion rejected, draft not complete", zap.String("status", string(draft.Status)))
		return nil, models.ErrDraftNotComplete
	}

	saved, err := s.meals.Save(ctx, &models.StoredMeal{UserID: userID, Meal: *draft.Meal})
	if err != nil {
		log.Error("Failed to save meal to permanent store", zap.Error(err))
		return nil, err
	}
	log.Info("Meal saved", zap.String("mealID", saved.ID))

	// Best-effort cleanup. The meal is already durable; an orphaned draft
	// needs manual or scheduled removal, so log it loudly and move on.
	if err := s.drafts.Delete(ctx, draft); err != nil {
		log.Error("ORPHANED DRAFT: failed to delete draft after promotion, manual cleanup required",
			zap.String("mealID", saved.ID),
			zap.Error(err))
	} else {
		s.notifier.Publish(userID, models.DraftEvent{Type: models.EventDraftDeleted, Draft: draft})
	}

	s.cache.Invalidate(ctx, userID)
	return saved, nil
}

func (s *mealServiceImpl) ListMeals(ctx context.Context, userID string, limit int, next string) (*models.MealPage, bool, error) {
	if limit <= 0 || limit > maxMealPageSize {
		limit = defaultMealPageSize
	}

	if page, ok := s.cache.Get(ctx, userID, limit, next); ok {
		s.logger.Debug("Meal list served from cache", zap.String("userID", userID))
		return page, true, nil
	}

	page, err := s.meals.ListByUser(ctx, userID, limit, next)
	if err != nil {
		return nil, false, err
	}

	s.cache.Set(ctx, userID, limit, next, page)
	return page, false, nil
}

func (s *mealServiceImpl) GetMeal(ctx context.Context, userID, mealID string) (*models.StoredMeal, error) {
	meal, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		s.logger.Warn("Meal access denied", zap.String("mealID", mealID), zap.String("userID", userID))
		return nil, models.ErrForbidden
	}
	return meal, nil
}
