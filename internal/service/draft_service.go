package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-server/internal/models"
	"meal-server/internal/notifier"
	"meal-server/internal/repository"
)

// BackgroundRunner schedules the fire-and-forget generation tasks that
// resolve pending drafts. Implemented by the worker.
type BackgroundRunner interface {
	SpawnGenerate(draftID uuid.UUID, input string)
	SpawnAddComponent(draftID uuid.UUID, description string)
}

// DraftService manages the meal draft lifecycle.
type DraftService interface {
	CreateDraft(ctx context.Context, userID, description string) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID, userID string) (*models.Draft, error)
	ListDrafts(ctx context.Context, userID string, limit int, cursor string) (*models.DraftPage, error)
	DeleteDraft(ctx context.Context, id uuid.UUID, userID string) error
	AddComponent(ctx context.Context, id uuid.UUID, userID, description string) (*models.Draft, error)
	RemoveComponent(ctx context.Context, id uuid.UUID, userID, componentID string) (*models.Draft, error)
}

type draftServiceImpl struct {
	repo     repository.DraftRepository
	runner   BackgroundRunner
	notifier *notifier.Notifier
	logger   *zap.Logger
}

// NewDraftService creates a new instance of DraftService.
func NewDraftService(repo repository.DraftRepository, runner BackgroundRunner, n *notifier.Notifier, logger *zap.Logger) DraftService {
	return &draftServiceImpl{
		repo:     repo,
		runner:   runner,
		notifier: n,
		logger:   logger.Named("DraftService"),
	}
}

// CreateDraft writes a pending placeholder draft and schedules generation.
func (s *draftServiceImpl) CreateDraft(ctx context.Context, userID, description string) (*models.Draft, error) {
	log := s.logger.With(zap.String("userID", userID))

	if description == "" {
		return nil, fmt.Errorf("%w: meal description is empty", models.ErrInvalidInput)
	}

	draft := &models.Draft{
		ID:            uuid.New(),
		UserID:        userID,
		OriginalInput: description,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, draft); err != nil {
		log.Error("Failed to save initial draft", zap.Error(err))
		return nil, err
	}
	log.Info("Draft created", zap.String("draftID", draft.ID.String()))

	s.runner.SpawnGenerate(draft.ID, description)
	return draft, nil
}

// GetDraft returns the draft after verifying ownership.
func (s *draftServiceImpl) GetDraft(ctx context.Context, id uuid.UUID, userID string) (*models.Draft, error) {
	draft, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		s.logger.Warn("Draft access denied",
			zap.String("draftID", id.String()),
			zap.String("userID", userID))
		return nil, models.ErrForbidden
	}
	return draft, nil
}

// ListDrafts returns one page of the owner's drafts, newest first.
func (s *draftServiceImpl) ListDrafts(ctx context.Context, userID string, limit int, cursor string) (*models.DraftPage, error) {
	return s.repo.ListByUser(ctx, userID, limit, cursor)
}

// DeleteDraft removes the draft and its index entry. Ownership mismatch is
// reported as not-found so a non-owner learns nothing about the draft's
// existence.
func (s *draftServiceImpl) DeleteDraft(ctx context.Context, id uuid.UUID, userID string) error {
	log := s.logger.With(zap.String("draftID", id.String()), zap.String("userID", userID))

	draft, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if draft.UserID != userID {
		log.Warn("Delete denied, reporting as not found")
		return models.ErrDraftNotFound
	}

	if err := s.repo.Delete(ctx, draft); err != nil {
		log.Error("Failed to delete draft", zap.Error(err))
		return err
	}
	log.Info("Draft deleted")

	s.notifier.Publish(userID, models.DraftEvent{Type: models.EventDraftDeleted, Draft: draft})
	return nil
}

// AddComponent flips the draft to pending_edit and schedules the append in
// the background. The draft must be resolved (complete or error) and carry
// meal content.
func (s *draftServiceImpl) AddComponent(ctx context.Context, id uuid.UUID, userID, description string) (*models.Draft, error) {
	log := s.logger.With(zap.String("draftID", id.String()), zap.String("userID", userID))

	if description == "" {
		return nil, fmt.Errorf("%w: component description is empty", models.ErrInvalidInput)
	}

	draft, err := s.GetDraft(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !draft.Editable() {
		log.Warn("Add rejected, draft is mid-generation", zap.String("status", string(draft.Status)))
		return nil, models.ErrDraftNotEditable
	}
	if draft.Meal == nil {
		log.Warn("Add rejected, draft has no meal content")
		return nil, models.ErrDraftNotEditable
	}

	draft.Status = models.StatusPendingEdit
	if err := s.repo.Update(ctx, draft); err != nil {
		log.Error("Failed to flip draft to pending_edit", zap.Error(err))
		return nil, err
	}
	log.Info("Component add scheduled")

	s.runner.SpawnAddComponent(draft.ID, description)
	return draft, nil
}

// RemoveComponent removes the component and recomputes totals synchronously.
func (s *draftServiceImpl) RemoveComponent(ctx context.Context, id uuid.UUID, userID, componentID string) (*models.Draft, error) {
	log := s.logger.With(zap.String("draftID", id.String()), zap.String("userID", userID))

	compID, err := uuid.Parse(componentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid component id %q", models.ErrInvalidInput, componentID)
	}

	draft, err := s.GetDraft(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !draft.Editable() {
		log.Warn("Remove rejected, draft is mid-generation", zap.String("status", string(draft.Status)))
		return nil, models.ErrDraftNotEditable
	}
	if draft.Meal == nil {
		log.Warn("Remove rejected, draft has no meal content")
		return nil, models.ErrDraftNotEditable
	}

	removed := false
	components := draft.Meal.Components[:0]
	for _, c := range draft.Meal.Components {
		if c.ID == compID {
			removed = true
			continue
		}
		components = append(components, c)
	}
	if !removed {
		return nil, models.ErrComponentNotFound
	}
	draft.Meal.Components = components
	draft.Meal.RecomputeProfile()
	draft.Status = models.StatusComplete
	draft.Error = ""

	if err := s.repo.Update(ctx, draft); err != nil {
		log.Error("Failed to write back draft after component removal", zap.Error(err))
		return nil, err
	}
	log.Info("Component removed", zap.String("componentID", compID.String()))

	s.notifier.Publish(userID, models.DraftEvent{Type: models.EventDraftUpdated, Draft: draft})
	return draft, nil
}
