// Package worker runs the fire-and-forget background tasks that resolve
// pending drafts: initial meal generation and asynchronous component adds.
//
// Tasks are not cancelled by client disconnection or draft deletion; they run
// to completion and their final write is a no-op when the draft is already
// gone. Store failures inside a task are logged and never propagated - the
// request that scheduled the task has long since returned.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-server/internal/generator"
	"meal-server/internal/models"
	"meal-server/internal/notifier"
	"meal-server/internal/repository"
)

const (
	taskGenerate     = "generate_meal"
	taskAddComponent = "add_component"
)

// Worker executes generation tasks against the draft store and publishes the
// resulting draft snapshots to the notifier.
type Worker struct {
	repo      repository.DraftRepository
	generator generator.Generator
	notifier  *notifier.Notifier
	logger    *zap.Logger
}

// New creates a Worker.
func New(repo repository.DraftRepository, gen generator.Generator, n *notifier.Notifier, logger *zap.Logger) *Worker {
	return &Worker{
		repo:      repo,
		generator: gen,
		notifier:  n,
		logger:    logger.Named("Worker"),
	}
}

// Spawn runs fn as a detached background task with a panic sink. The task
// gets a fresh context: it must outlive the request that scheduled it.
func (w *Worker) Spawn(task string, fn func(ctx context.Context)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				w.logger.Error("Background task panicked",
					zap.String("task", task),
					zap.Any("panic", r))
			}
		}()
		fn(context.Background())
	}()
}

// SpawnGenerate schedules initial meal generation for a freshly created draft.
func (w *Worker) SpawnGenerate(draftID uuid.UUID, input string) {
	w.Spawn(taskGenerate, func(ctx context.Context) {
		w.GenerateDraft(ctx, draftID, input)
	})
}

// SpawnAddComponent schedules an asynchronous component add for a draft
// already flipped to pending_edit.
func (w *Worker) SpawnAddComponent(draftID uuid.UUID, description string) {
	w.Spawn(taskAddComponent, func(ctx context.Context) {
		w.AddComponent(ctx, draftID, description)
	})
}

// GenerateDraft calls the generation capability, then performs a
// fetch-modify-write on the draft and publishes the final snapshot.
func (w *Worker) GenerateDraft(ctx context.Context, draftID uuid.UUID, input string) {
	log := w.logger.With(zap.String("draftID", draftID.String()), zap.String("task", taskGenerate))
	log.Info("Starting background meal generation")
	MetricsIncrementTaskStarted(taskGenerate)
	start := time.Now()
	defer func() { MetricsRecordTaskDuration(taskGenerate, time.Since(start)) }()

	meal, genErr := w.generator.GenerateMeal(ctx, input)

	draft, err := w.repo.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, models.ErrDraftNotFound) {
			// Owner deleted the draft mid-flight; expected, nothing to publish.
			log.Info("Draft was deleted before generation completed")
			return
		}
		log.Error("Failed to fetch draft for write-back", zap.Error(err))
		MetricsIncrementTaskFailed(taskGenerate, "store_read")
		return
	}

	if genErr != nil {
		log.Warn("Meal generation failed", zap.Error(genErr))
		MetricsIncrementTaskFailed(taskGenerate, "generation")
		// A draft never carries content and an error at the same time.
		draft.Status = models.StatusError
		draft.Meal = nil
		draft.Error = failureMessage(genErr)
	} else {
		draft.Status = models.StatusComplete
		draft.Meal = meal
		draft.Error = ""
	}

	if err := w.repo.Update(ctx, draft); err != nil {
		log.Error("Failed to write back draft after generation", zap.Error(err))
		MetricsIncrementTaskFailed(taskGenerate, "store_write")
		return
	}

	w.notifier.Publish(draft.UserID, models.DraftEvent{Type: models.EventDraftUpdated, Draft: draft})
	log.Info("Background meal generation finished", zap.String("status", string(draft.Status)))
}

// AddComponent resolves the described item into a component, appends it to
// the draft's meal, recomputes totals and publishes the final snapshot.
func (w *Worker) AddComponent(ctx context.Context, draftID uuid.UUID, description string) {
	log := w.logger.With(zap.String("draftID", draftID.String()), zap.String("task", taskAddComponent))
	log.Info("Starting background component add")
	MetricsIncrementTaskStarted(taskAddComponent)
	start := time.Now()
	defer func() { MetricsRecordTaskDuration(taskAddComponent, time.Since(start)) }()

	draft, err := w.repo.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, models.ErrDraftNotFound) {
			log.Info("Draft was deleted before component add started")
			return
		}
		log.Error("Failed to fetch draft for component add", zap.Error(err))
		MetricsIncrementTaskFailed(taskAddComponent, "store_read")
		return
	}
	if draft.Meal == nil {
		// The edit path only flips drafts with content; reaching here means
		// the record was clobbered by a concurrent write.
		log.Warn("Draft has no meal content, recording edit failure")
		w.resolveEdit(ctx, log, draft, nil, &generator.GenerationError{Reason: "draft no longer has meal content"})
		return
	}

	component, genErr := w.generator.GenerateComponent(ctx, draft.Meal, description)

	// Re-fetch: the draft may have been mutated or deleted while the
	// generation call was in flight. Last writer wins on the record itself.
	draft, err = w.repo.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, models.ErrDraftNotFound) {
			log.Info("Draft was deleted before component add completed")
			return
		}
		log.Error("Failed to fetch draft for write-back", zap.Error(err))
		MetricsIncrementTaskFailed(taskAddComponent, "store_read")
		return
	}

	w.resolveEdit(ctx, log, draft, component, genErr)
}

// resolveEdit finishes a pending_edit draft with either the new component or
// a recorded failure, then publishes the snapshot.
func (w *Worker) resolveEdit(ctx context.Context, log *zap.Logger, draft *models.Draft, component *models.Component, genErr error) {
	if genErr == nil && draft.Meal == nil {
		// A concurrent write cleared the content while generation ran.
		genErr = &generator.GenerationError{Reason: "draft no longer has meal content"}
	}
	if genErr != nil {
		log.Warn("Component generation failed", zap.Error(genErr))
		MetricsIncrementTaskFailed(taskAddComponent, "generation")
		// A draft never carries content and an error at the same time.
		draft.Status = models.StatusError
		draft.Meal = nil
		draft.Error = failureMessage(genErr)
	} else {
		draft.Meal.Components = append(draft.Meal.Components, *component)
		draft.Meal.RecomputeProfile()
		draft.Status = models.StatusComplete
		draft.Error = ""
	}

	if err := w.repo.Update(ctx, draft); err != nil {
		log.Error("Failed to write back draft after component add", zap.Error(err))
		MetricsIncrementTaskFailed(taskAddComponent, "store_write")
		return
	}

	w.notifier.Publish(draft.UserID, models.DraftEvent{Type: models.EventDraftUpdated, Draft: draft})
	log.Info("Background component add finished", zap.String("status", string(draft.Status)))
}

func failureMessage(err error) string {
	var genErr *generator.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Reason
	}
	return "meal generation failed unexpectedly"
}
